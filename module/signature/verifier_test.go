package signature_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/module/signature"
	"github.com/donlabs/feedverify/utils/unittest"
)

func TestVerifySignaturesMatchesDistinctSigners(t *testing.T) {
	oracles := unittest.OracleFixtures(4)
	context := unittest.ContextFixture(unittest.DigestFixture())
	data := []byte("payload")
	msgHash := signature.ReportMessageHash(data, context)

	keys := make([]feed.OracleKey, len(oracles))
	for i, oracle := range oracles {
		keys[i] = oracle.Key
	}

	sigs := []feed.SignaturePair{
		oracles[3].Sign(t, data, context),
		oracles[1].Sign(t, data, context),
	}

	matched, err := signature.VerifySignatures(msgHash, keys, sigs)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, oracles[3].Key, matched[0])
	assert.Equal(t, oracles[1].Key, matched[1])

	// signature order does not matter, only signer uniqueness
	matched, err = signature.VerifySignatures(msgHash, keys, []feed.SignaturePair{sigs[1], sigs[0]})
	require.NoError(t, err)
	assert.Equal(t, []feed.OracleKey{oracles[1].Key, oracles[3].Key}, matched)
}

func TestVerifySignaturesNoMatch(t *testing.T) {
	oracles := unittest.OracleFixtures(4)
	context := unittest.ContextFixture(unittest.DigestFixture())
	data := []byte("payload")
	msgHash := signature.ReportMessageHash(data, context)

	keys := make([]feed.OracleKey, len(oracles))
	for i, oracle := range oracles {
		keys[i] = oracle.Key
	}

	// random bytes verify against no key
	_, err := signature.VerifySignatures(msgHash, keys, []feed.SignaturePair{
		oracles[0].Sign(t, data, context),
		unittest.BogusSignaturePair(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, signature.ErrNoMatchingSigner))

	// a signer outside the configured set verifies against no key either
	stranger := unittest.OracleFixture()
	_, err = signature.VerifySignatures(msgHash, keys, []feed.SignaturePair{
		stranger.Sign(t, data, context),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, signature.ErrNoMatchingSigner))
}

func TestVerifySignaturesDuplicatedSigner(t *testing.T) {
	oracles := unittest.OracleFixtures(4)
	context := unittest.ContextFixture(unittest.DigestFixture())
	data := []byte("payload")
	msgHash := signature.ReportMessageHash(data, context)

	keys := make([]feed.OracleKey, len(oracles))
	for i, oracle := range oracles {
		keys[i] = oracle.Key
	}

	// both signatures individually match a configured key, but resolve to
	// the same oracle
	_, err := signature.VerifySignatures(msgHash, keys, []feed.SignaturePair{
		oracles[2].Sign(t, data, context),
		oracles[2].Sign(t, data, context),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, signature.ErrDuplicatedSigner))
}

func TestReportMessageHashCoversContext(t *testing.T) {
	digest := unittest.DigestFixture()
	context := unittest.ContextFixture(digest)
	data := []byte("payload")

	h1 := signature.ReportMessageHash(data, context)
	require.Len(t, h1, 32)

	// deterministic
	assert.Equal(t, h1, signature.ReportMessageHash(data, context))

	// any context word change moves the hash
	other := context
	other[2][0] ^= 0xff
	assert.NotEqual(t, h1, signature.ReportMessageHash(data, other))

	// payload changes move the hash
	assert.NotEqual(t, h1, signature.ReportMessageHash([]byte("payload2"), context))
}
