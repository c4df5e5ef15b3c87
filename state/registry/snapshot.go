package registry

import (
	"github.com/donlabs/feedverify/model/feed"
)

// Snapshot is an immutable view of the registry as of one version. All
// verification reads go through a snapshot, never the live registry, so a
// report always verifies against the configuration state the caller
// actually holds. Later registry mutations do not show through; consumers
// pick them up only when a newer snapshot is distributed to them.
type Snapshot struct {
	version uint64
	records map[feed.ConfigDigest]*feed.ConfigRecord
}

// Version is the registry version the snapshot was taken at.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Lookup returns the configuration record for the given digest, or an
// UnknownDigestError if the snapshot holds none.
func (s *Snapshot) Lookup(digest feed.ConfigDigest) (*feed.ConfigRecord, error) {
	record, ok := s.records[digest]
	if !ok {
		return nil, UnknownDigestError{Digest: digest}
	}
	return record, nil
}

// Digests returns the digests the snapshot holds, in unspecified order.
func (s *Snapshot) Digests() []feed.ConfigDigest {
	digests := make([]feed.ConfigDigest, 0, len(s.records))
	for digest := range s.records {
		digests = append(digests, digest)
	}
	return digests
}
