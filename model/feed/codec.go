package feed

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// The wire format of a signed report is the ABI encoding of
// (bytes32[3], bytes, bytes32[], bytes32[], bytes32): three fixed context
// words, the length-prefixed payload, the r and s signature component
// arrays, and a trailing word of raw recovery ids. The recovery ids are
// accepted for format compatibility and discarded, since verification
// performs no public-key recovery.
var reportArguments = abi.Arguments{
	{Name: "reportContext", Type: mustNewType("bytes32[3]")},
	{Name: "report", Type: mustNewType("bytes")},
	{Name: "rs", Type: mustNewType("bytes32[]")},
	{Name: "ss", Type: mustNewType("bytes32[]")},
	{Name: "rawVs", Type: mustNewType("bytes32")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// DecodeReport decodes the raw byte encoding of a signed report. The
// r/s array consistency check runs here, before any cryptographic work.
func DecodeReport(raw []byte) (*SignedReport, error) {
	values, err := reportArguments.Unpack(raw)
	if err != nil {
		return nil, NewInvalidEncodingErrorf("could not unpack report: %w", err)
	}

	context := values[0].([3][32]byte)
	data := values[1].([]byte)
	rs := values[2].([][32]byte)
	ss := values[3].([][32]byte)

	if len(rs) != len(ss) {
		return nil, MismatchedSignatureArraysError{NumR: len(rs), NumS: len(ss)}
	}

	sigs := make([]SignaturePair, len(rs))
	for i := range rs {
		sigs[i] = SignaturePair{R: rs[i], S: ss[i]}
	}

	return &SignedReport{
		Context:    context,
		Data:       data,
		Signatures: sigs,
	}, nil
}

// DecodeReportHex decodes a report from its hex text form. The conventional
// 0x prefix is optional.
func DecodeReportHex(s string) (*SignedReport, error) {
	raw, err := DecodeHexString(s)
	if err != nil {
		return nil, NewInvalidEncodingErrorf("could not decode report hex: %w", err)
	}
	return DecodeReport(raw)
}

// EncodeReport produces the byte encoding DecodeReport accepts. The
// recovery-id word is written as zeroes; decoders ignore it.
func EncodeReport(report *SignedReport) ([]byte, error) {
	rs := make([][32]byte, len(report.Signatures))
	ss := make([][32]byte, len(report.Signatures))
	for i, sig := range report.Signatures {
		rs[i] = sig.R
		ss[i] = sig.S
	}
	var rawVs [32]byte
	return reportArguments.Pack(report.Context, report.Data, rs, ss, rawVs)
}
