package verifier

import (
	"errors"
	"fmt"

	"github.com/donlabs/feedverify/model/feed"
)

// InactiveDigestError indicates a report signed under a configuration that
// is known but currently deactivated.
type InactiveDigestError struct {
	Digest feed.ConfigDigest
}

func (e InactiveDigestError) Error() string {
	return fmt.Sprintf("configuration %s is deactivated", e.Digest)
}

func IsInactiveDigestError(err error) bool {
	var errInactiveDigest InactiveDigestError
	return errors.As(err, &errInactiveDigest)
}

// InvalidSignatureCountError indicates a report carrying a number of
// signatures different from the exact f+1 its configuration requires.
// Carrying more signatures than required is rejected the same as carrying
// fewer.
type InvalidSignatureCountError struct {
	Digest   feed.ConfigDigest
	Expected int
	Got      int
}

func (e InvalidSignatureCountError) Error() string {
	return fmt.Sprintf("report under %s carries %d signatures, configuration requires exactly %d",
		e.Digest, e.Got, e.Expected)
}

func IsInvalidSignatureCountError(err error) bool {
	var errInvalidSignatureCount InvalidSignatureCountError
	return errors.As(err, &errInvalidSignatureCount)
}
