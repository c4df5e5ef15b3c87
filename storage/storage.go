package storage

import (
	"errors"

	"github.com/donlabs/feedverify/model/feed"
)

var (
	// ErrNotFound is returned when a resource cannot be found.
	ErrNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("key already exists")
)

// Configs persists the digest to configuration record mapping. Records are
// immutable values; Store replaces the record for its digest wholesale.
type Configs interface {

	// Store inserts the record, replacing any record already held under
	// the same digest.
	Store(record *feed.ConfigRecord) error

	// ByDigest returns the current record for the given digest. It returns
	// ErrNotFound if no record is held for the digest.
	ByDigest(digest feed.ConfigDigest) (*feed.ConfigRecord, error)

	// All returns every record held, in unspecified order.
	All() ([]*feed.ConfigRecord, error)
}
