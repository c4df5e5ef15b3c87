package signature

import (
	"fmt"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/donlabs/feedverify/model/feed"
)

// ReportMessageHash computes the message hash the oracle network signs:
// the Keccak256 of the payload hash followed by the three report context
// words.
func ReportMessageHash(data []byte, context [3][feed.DigestLen]byte) []byte {
	payloadHash := gethcrypto.Keccak256(data)
	return gethcrypto.Keccak256(payloadHash, context[0][:], context[1][:], context[2][:])
}

// VerifySignatures resolves each signature to the oracle that produced it
// and returns the matched keys in signature order.
//
// The scheme offers no public-key recovery, so resolution is exhaustive:
// each signature is checked against every oracle key in configured order
// and the first verifying key is taken as the signer. A signature that
// verifies against no key fails with ErrNoMatchingSigner. A signature
// whose resolved key was already claimed by an earlier signature fails
// with ErrDuplicatedSigner; this uniqueness check is what enforces "each
// oracle signs at most once".
//
// The caller enforces any threshold on the size of the returned set.
func VerifySignatures(msgHash []byte, oracles []feed.OracleKey, sigs []feed.SignaturePair) ([]feed.OracleKey, error) {
	matched := make([]feed.OracleKey, 0, len(sigs))
	claimed := make(map[int]struct{}, len(sigs))

	for i, sig := range sigs {
		var raw [2 * feed.SignatureComponentLen]byte
		copy(raw[:feed.SignatureComponentLen], sig.R[:])
		copy(raw[feed.SignatureComponentLen:], sig.S[:])

		signer := -1
		for j := range oracles {
			if gethcrypto.VerifySignature(oracles[j][:], msgHash, raw[:]) {
				signer = j
				break
			}
		}
		if signer < 0 {
			return nil, fmt.Errorf("signature %d: %w", i, ErrNoMatchingSigner)
		}
		if _, ok := claimed[signer]; ok {
			return nil, fmt.Errorf("signature %d resolves to oracle %d: %w", i, signer, ErrDuplicatedSigner)
		}
		claimed[signer] = struct{}{}
		matched = append(matched, oracles[signer])
	}

	return matched, nil
}
