package registry

import (
	"errors"
	"fmt"

	"github.com/donlabs/feedverify/model/feed"
)

// UnknownDigestError indicates an operation referencing a config digest for
// which no configuration was ever set.
type UnknownDigestError struct {
	Digest feed.ConfigDigest
}

func (e UnknownDigestError) Error() string {
	return fmt.Sprintf("no configuration set for digest %s", e.Digest)
}

func IsUnknownDigestError(err error) bool {
	var errUnknownDigest UnknownDigestError
	return errors.As(err, &errUnknownDigest)
}
