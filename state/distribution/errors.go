package distribution

import (
	"errors"
	"fmt"

	"github.com/donlabs/feedverify/model/feed"
)

// NoHandleError indicates a user who holds no snapshot handle, either
// because none was ever distributed to them or because it was revoked.
type NoHandleError struct {
	User feed.Identity
}

func (e NoHandleError) Error() string {
	return fmt.Sprintf("no snapshot handle held by user %q", e.User)
}

func IsNoHandleError(err error) bool {
	var errNoHandle NoHandleError
	return errors.As(err, &errNoHandle)
}
