package feed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/utils/unittest"
)

func validConfigInputs(t *testing.T, n int) ([]byte, [][]byte) {
	digest := unittest.DigestFixture()
	return digest[:], unittest.OracleKeys(unittest.OracleFixtures(n))
}

func TestNewConfigRecordValid(t *testing.T) {
	digest, oracles := validConfigInputs(t, 4)
	now := time.Now().UTC()

	record, err := feed.NewConfigRecord(digest, oracles, 1, now)
	require.NoError(t, err)

	assert.Equal(t, digest, record.Digest[:])
	assert.Len(t, record.Oracles, 4)
	assert.Equal(t, uint8(1), record.F)
	assert.True(t, record.Active)
	assert.Equal(t, now, record.LastUpdated)
	assert.Equal(t, 2, record.RequiredSignatures())

	// key order is preserved, position is the ordinal index
	for i, raw := range oracles {
		assert.Equal(t, raw, record.Oracles[i][:])
	}
}

func TestNewConfigRecordDigestLength(t *testing.T) {
	_, oracles := validConfigInputs(t, 4)

	for _, n := range []int{0, 31, 33} {
		_, err := feed.NewConfigRecord(make([]byte, n), oracles, 1, time.Now())
		require.Error(t, err)
		assert.True(t, feed.IsInvalidDigestLengthError(err))
	}
}

func TestNewConfigRecordFaultToleranceRange(t *testing.T) {
	digest, oracles := validConfigInputs(t, 31)

	for _, f := range []int{-1, 0, 11} {
		_, err := feed.NewConfigRecord(digest, oracles, f, time.Now())
		require.Error(t, err)
		assert.True(t, feed.IsInvalidFaultToleranceError(err))
	}

	// f=10 requires n > 30, which n=31 satisfies
	_, err := feed.NewConfigRecord(digest, oracles, 10, time.Now())
	require.NoError(t, err)
}

func TestNewConfigRecordExcessOracles(t *testing.T) {
	digest, oracles := validConfigInputs(t, 32)

	_, err := feed.NewConfigRecord(digest, oracles, 1, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsExcessOraclesError(err))
}

func TestNewConfigRecordInsufficientOracles(t *testing.T) {
	digest, oracles := validConfigInputs(t, 3)

	// quorum needs strictly more than 3f signers
	_, err := feed.NewConfigRecord(digest, oracles, 1, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsInsufficientOraclesError(err))

	digest, oracles = validConfigInputs(t, 6)
	_, err = feed.NewConfigRecord(digest, oracles, 2, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsInsufficientOraclesError(err))
}

func TestNewConfigRecordKeyLength(t *testing.T) {
	digest, oracles := validConfigInputs(t, 4)
	oracles[2] = oracles[2][:64]

	_, err := feed.NewConfigRecord(digest, oracles, 1, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsInvalidOracleKeyLengthError(err))
}

func TestNewConfigRecordZeroKey(t *testing.T) {
	digest, oracles := validConfigInputs(t, 4)
	oracles[1] = make([]byte, feed.PublicKeyLen)

	_, err := feed.NewConfigRecord(digest, oracles, 1, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsZeroOracleKeyError(err))
}

func TestNewConfigRecordDuplicateKey(t *testing.T) {
	digest, oracles := validConfigInputs(t, 4)
	oracles[3] = oracles[0]

	_, err := feed.NewConfigRecord(digest, oracles, 1, time.Now())
	require.Error(t, err)
	assert.True(t, feed.IsDuplicateOracleKeyError(err))
}

func TestConfigRecordCopy(t *testing.T) {
	record, _ := unittest.ConfigRecordFixture(t, 4, 1)

	clone := record.Copy()
	require.Equal(t, record, clone)

	clone.Active = false
	clone.Oracles[0] = feed.OracleKey{}
	assert.True(t, record.Active)
	assert.False(t, record.Oracles[0].IsZero())
}

func TestHexStringToDigest(t *testing.T) {
	digest := unittest.DigestFixture()

	parsed, err := feed.HexStringToDigest(digest.String())
	require.NoError(t, err)
	assert.Equal(t, digest, parsed)

	parsed, err = feed.HexStringToDigest(digest.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, digest, parsed)

	_, err = feed.HexStringToDigest("0xdeadbeef")
	require.Error(t, err)
	assert.True(t, feed.IsInvalidDigestLengthError(err))
}
