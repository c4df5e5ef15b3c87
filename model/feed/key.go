package feed

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// DigestLen is the length of a configuration digest in bytes.
	DigestLen = 32

	// PublicKeyLen is the length of an uncompressed secp256k1 public key
	// in bytes, including the 0x04 format prefix.
	PublicKeyLen = 65

	// MaxOracles is the protocol maximum for the size of an oracle set.
	MaxOracles = 31

	// MinFaultTolerance and MaxFaultTolerance bound the number of faulty
	// oracles a configuration may tolerate.
	MinFaultTolerance = 1
	MaxFaultTolerance = 10
)

// ConfigDigest identifies an oracle signer-set configuration. It is chosen
// by the administrator and embedded as the first context word of every
// report signed under that configuration.
type ConfigDigest [DigestLen]byte

// ZeroDigest is the zero-valued config digest.
var ZeroDigest = ConfigDigest{}

// String returns the hex string representation of the digest.
func (d ConfigDigest) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

// HexStringToDigest converts a hex string, with or without the 0x prefix,
// into a config digest.
func HexStringToDigest(s string) (ConfigDigest, error) {
	var digest ConfigDigest
	raw, err := DecodeHexString(s)
	if err != nil {
		return ZeroDigest, fmt.Errorf("could not decode digest hex: %w", err)
	}
	if len(raw) != DigestLen {
		return ZeroDigest, NewInvalidDigestLengthError(len(raw))
	}
	copy(digest[:], raw)
	return digest, nil
}

// OracleKey is the uncompressed public key of an oracle signer. Identity is
// the byte value; a key is unique within a configuration.
type OracleKey [PublicKeyLen]byte

// IsZero returns true if every byte of the key is zero.
func (k OracleKey) IsZero() bool {
	return k == OracleKey{}
}

// String returns the hex string representation of the key.
func (k OracleKey) String() string {
	return "0x" + hex.EncodeToString(k[:])
}

// Identity names a caller of the administrative or consumer APIs. The core
// packages treat it as an opaque string; access control interprets it.
type Identity string

// DecodeHexString decodes hex text into raw bytes, accepting the
// conventional 0x prefix as optional.
func DecodeHexString(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
