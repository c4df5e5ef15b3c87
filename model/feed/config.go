package feed

import (
	"time"
)

// ConfigRecord is the current state of one oracle signer-set configuration.
// Records are immutable once published: every administrative mutation
// allocates a fresh record, so holders of an older record (through a
// snapshot) are never affected by later mutations.
type ConfigRecord struct {
	// Digest is the primary key of the configuration.
	Digest ConfigDigest
	// Oracles is the ordered set of signer keys. The position of a key is
	// its ordinal index; the index has no meaning beyond fixing the
	// iteration order used during signature matching.
	Oracles []OracleKey
	// F is the maximum number of faulty signers the configuration
	// tolerates. Every report requires exactly F+1 signatures.
	F uint8
	// Active reports whether the configuration currently accepts reports.
	Active bool
	// LastUpdated is the time of the mutation that produced this record.
	LastUpdated time.Time
}

// RequiredSignatures is the exact number of signatures a report signed
// under this configuration must carry.
func (c *ConfigRecord) RequiredSignatures() int {
	return int(c.F) + 1
}

// Copy returns a new record with the same content. Mutating the copy never
// affects the original.
func (c *ConfigRecord) Copy() *ConfigRecord {
	oracles := make([]OracleKey, len(c.Oracles))
	copy(oracles, c.Oracles)
	return &ConfigRecord{
		Digest:      c.Digest,
		Oracles:     oracles,
		F:           c.F,
		Active:      c.Active,
		LastUpdated: c.LastUpdated,
	}
}

// NewConfigRecord validates the inputs of an administrative set operation
// and builds the active record for them. The checks run in a fixed order:
// digest length, fault tolerance range, set size against the protocol
// maximum, set size against the Byzantine quorum, key length and non-zero
// content per key, key uniqueness. The first failing check aborts.
func NewConfigRecord(digest []byte, oracles [][]byte, f int, now time.Time) (*ConfigRecord, error) {
	if len(digest) != DigestLen {
		return nil, NewInvalidDigestLengthError(len(digest))
	}
	if f < MinFaultTolerance || f > MaxFaultTolerance {
		return nil, InvalidFaultToleranceError{F: f}
	}
	if len(oracles) > MaxOracles {
		return nil, ExcessOraclesError{Count: len(oracles)}
	}
	if len(oracles) <= 3*f {
		return nil, InsufficientOraclesError{Count: len(oracles), F: f}
	}

	keys := make([]OracleKey, 0, len(oracles))
	seen := make(map[OracleKey]struct{}, len(oracles))
	for i, raw := range oracles {
		if len(raw) != PublicKeyLen {
			return nil, InvalidOracleKeyLengthError{Index: i, Got: len(raw)}
		}
		var key OracleKey
		copy(key[:], raw)
		if key.IsZero() {
			return nil, ZeroOracleKeyError{Index: i}
		}
		if _, ok := seen[key]; ok {
			return nil, DuplicateOracleKeyError{Index: i, Key: key}
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	record := &ConfigRecord{
		Oracles:     keys,
		F:           uint8(f),
		Active:      true,
		LastUpdated: now,
	}
	copy(record.Digest[:], digest)
	return record, nil
}
