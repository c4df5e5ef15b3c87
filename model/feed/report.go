package feed

// SignatureComponentLen is the length of each signature component (r or s)
// in bytes.
const SignatureComponentLen = 32

// SignaturePair holds the two components of one ECDSA signature over a
// report. The scheme carries no usable recovery id, so the signer is not
// derivable from the pair alone.
type SignaturePair struct {
	R [SignatureComponentLen]byte
	S [SignatureComponentLen]byte
}

// SignedReport is the decoded form of an oracle-network report. It is
// ephemeral input: constructed by decoding, consumed by one verification.
type SignedReport struct {
	// Context holds the three report context words. Word 0 is the config
	// digest of the signing configuration; the remaining words are opaque
	// to verification but covered by the signed message hash.
	Context [3][DigestLen]byte
	// Data is the report payload, returned verbatim on successful
	// verification.
	Data []byte
	// Signatures is the ordered sequence of signature pairs. Order carries
	// no meaning; only uniqueness of the resolved signers does.
	Signatures []SignaturePair
}

// Digest returns the config digest the report claims to be signed under.
func (r *SignedReport) Digest() ConfigDigest {
	return ConfigDigest(r.Context[0])
}
