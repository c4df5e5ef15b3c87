package unittest

import (
	"crypto/ecdsa"
	crand "crypto/rand"
	"testing"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/module/signature"
)

// Oracle is a test oracle: a real secp256k1 keypair able to sign reports.
// Production code only ever sees the public key; signing exists purely to
// build fixtures.
type Oracle struct {
	Key feed.OracleKey
	sk  *ecdsa.PrivateKey
}

func OracleFixture() *Oracle {
	sk, err := gethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	var key feed.OracleKey
	copy(key[:], gethcrypto.FromECDSAPub(&sk.PublicKey))
	return &Oracle{Key: key, sk: sk}
}

func OracleFixtures(n int) []*Oracle {
	oracles := make([]*Oracle, n)
	for i := 0; i < n; i++ {
		oracles[i] = OracleFixture()
	}
	return oracles
}

// OracleKeys flattens fixture oracles into the raw key bytes the
// administrative set operation takes.
func OracleKeys(oracles []*Oracle) [][]byte {
	keys := make([][]byte, len(oracles))
	for i, oracle := range oracles {
		keys[i] = append([]byte(nil), oracle.Key[:]...)
	}
	return keys
}

// Sign produces the oracle's signature pair over the given payload and
// report context.
func (o *Oracle) Sign(t testing.TB, data []byte, context [3][feed.DigestLen]byte) feed.SignaturePair {
	msgHash := signature.ReportMessageHash(data, context)
	sig, err := gethcrypto.Sign(msgHash, o.sk)
	require.NoError(t, err)

	var pair feed.SignaturePair
	copy(pair.R[:], sig[:feed.SignatureComponentLen])
	copy(pair.S[:], sig[feed.SignatureComponentLen:2*feed.SignatureComponentLen])
	return pair
}

func DigestFixture() feed.ConfigDigest {
	var digest feed.ConfigDigest
	_, _ = crand.Read(digest[:])
	return digest
}

// ContextFixture builds a report context carrying the given digest as word
// zero and random remaining words.
func ContextFixture(digest feed.ConfigDigest) [3][feed.DigestLen]byte {
	var context [3][feed.DigestLen]byte
	context[0] = digest
	_, _ = crand.Read(context[1][:])
	_, _ = crand.Read(context[2][:])
	return context
}

// BogusSignaturePair is syntactically well-formed random bytes that no key
// will verify.
func BogusSignaturePair() feed.SignaturePair {
	var pair feed.SignaturePair
	_, _ = crand.Read(pair.R[:])
	_, _ = crand.Read(pair.S[:])
	return pair
}

// ReportFixture encodes a report over the given context and payload,
// signed by each of the given oracles in order.
func ReportFixture(t testing.TB, context [3][feed.DigestLen]byte, data []byte, signers ...*Oracle) []byte {
	report := &feed.SignedReport{
		Context: context,
		Data:    data,
	}
	for _, signer := range signers {
		report.Signatures = append(report.Signatures, signer.Sign(t, data, context))
	}
	raw, err := feed.EncodeReport(report)
	require.NoError(t, err)
	return raw
}

// ConfigRecordFixture is a valid active record over n fresh oracles.
func ConfigRecordFixture(t testing.TB, n int, f int) (*feed.ConfigRecord, []*Oracle) {
	oracles := OracleFixtures(n)
	digest := DigestFixture()
	record, err := feed.NewConfigRecord(digest[:], OracleKeys(oracles), f, time.Now().UTC())
	require.NoError(t, err)
	return record, oracles
}
