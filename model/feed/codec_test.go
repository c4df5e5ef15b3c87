package feed_test

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/utils/unittest"
)

func TestReportRoundTrip(t *testing.T) {
	digest := unittest.DigestFixture()
	context := unittest.ContextFixture(digest)
	data := []byte("some report payload")

	oracles := unittest.OracleFixtures(2)
	raw := unittest.ReportFixture(t, context, data, oracles...)

	report, err := feed.DecodeReport(raw)
	require.NoError(t, err)

	assert.Equal(t, context, report.Context)
	assert.Equal(t, data, report.Data)
	assert.Equal(t, digest, report.Digest())
	assert.Len(t, report.Signatures, 2)
}

func TestReportHexPrefixOptional(t *testing.T) {
	digest := unittest.DigestFixture()
	context := unittest.ContextFixture(digest)
	raw := unittest.ReportFixture(t, context, []byte("payload"), unittest.OracleFixture())

	plain := hex.EncodeToString(raw)

	for _, input := range []string{plain, "0x" + plain, "0X" + plain} {
		report, err := feed.DecodeReportHex(input)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), report.Data)
	}
}

func TestReportHexInvalid(t *testing.T) {
	_, err := feed.DecodeReportHex("0xzzzz")
	require.Error(t, err)
	assert.True(t, feed.IsInvalidEncodingError(err))
}

func TestReportDecodeTruncated(t *testing.T) {
	digest := unittest.DigestFixture()
	context := unittest.ContextFixture(digest)
	raw := unittest.ReportFixture(t, context, []byte("payload"), unittest.OracleFixture())

	for _, cut := range []int{1, 32, len(raw) / 2, len(raw) - 1} {
		_, err := feed.DecodeReport(raw[:len(raw)-cut])
		require.Error(t, err, "decoding should fail with %d bytes cut", cut)
		assert.True(t, feed.IsInvalidEncodingError(err))
	}
}

func TestReportDecodeMismatchedSignatureArrays(t *testing.T) {
	raw := packReport(t, [][32]byte{{1}, {2}}, [][32]byte{{3}})

	_, err := feed.DecodeReport(raw)
	require.Error(t, err)
	assert.True(t, feed.IsMismatchedSignatureArraysError(err))
	assert.False(t, feed.IsInvalidEncodingError(err))
}

// packReport builds a report encoding with independently chosen r and s
// arrays, which the well-formed encoder refuses to produce.
func packReport(t *testing.T, rs [][32]byte, ss [][32]byte) []byte {
	newType := func(s string) abi.Type {
		typ, err := abi.NewType(s, "", nil)
		require.NoError(t, err)
		return typ
	}
	arguments := abi.Arguments{
		{Type: newType("bytes32[3]")},
		{Type: newType("bytes")},
		{Type: newType("bytes32[]")},
		{Type: newType("bytes32[]")},
		{Type: newType("bytes32")},
	}
	var context [3][32]byte
	var rawVs [32]byte
	raw, err := arguments.Pack(context, []byte("payload"), rs, ss, rawVs)
	require.NoError(t, err)
	return raw
}
