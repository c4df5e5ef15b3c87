package signature

import (
	"errors"
)

var (
	// ErrNoMatchingSigner is returned when a signature verifies against
	// none of the configured oracle keys.
	ErrNoMatchingSigner = errors.New("signature matches no configured oracle key")

	// ErrDuplicatedSigner is returned when two signatures in the same call
	// resolve to the same oracle key.
	ErrDuplicatedSigner = errors.New("duplicated signer")
)
