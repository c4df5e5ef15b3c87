package verifier

import (
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/module/signature"
	"github.com/donlabs/feedverify/state/registry"
)

// Engine verifies oracle-signed reports against a configuration snapshot.
// It is stateless and read-only: identical (snapshot, report) inputs always
// produce the identical outcome, which makes every verification replayable.
type Engine struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("engine", "verifier").Logger(),
	}
}

// Verify authenticates the raw report encoding against the given snapshot
// and returns the embedded payload bytes.
//
// The pipeline: decode, look up the report's config digest in the
// snapshot, require the configuration to be active, require the signature
// count to equal f+1 exactly, then resolve every signature to a distinct
// configured oracle. The count requirement is deliberately strict: designs
// that accept "at least f+1" exist, but the source error model rejects any
// mismatch, high or low, before cryptographic work.
func (e *Engine) Verify(snapshot *registry.Snapshot, raw []byte) ([]byte, error) {
	report, err := feed.DecodeReport(raw)
	if err != nil {
		return nil, err
	}
	return e.verifyDecoded(snapshot, report)
}

// VerifyHex is Verify over the hex text forms of the consumer API: report
// hex in, payload hex out. The 0x prefix is optional on input and present
// on output.
func (e *Engine) VerifyHex(snapshot *registry.Snapshot, reportHex string) (string, error) {
	report, err := feed.DecodeReportHex(reportHex)
	if err != nil {
		return "", err
	}
	data, err := e.verifyDecoded(snapshot, report)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(data), nil
}

func (e *Engine) verifyDecoded(snapshot *registry.Snapshot, report *feed.SignedReport) ([]byte, error) {
	digest := report.Digest()

	record, err := snapshot.Lookup(digest)
	if err != nil {
		return nil, err
	}
	if !record.Active {
		return nil, InactiveDigestError{Digest: digest}
	}

	required := record.RequiredSignatures()
	if len(report.Signatures) != required {
		return nil, InvalidSignatureCountError{
			Digest:   digest,
			Expected: required,
			Got:      len(report.Signatures),
		}
	}

	msgHash := signature.ReportMessageHash(report.Data, report.Context)
	matched, err := signature.VerifySignatures(msgHash, record.Oracles, report.Signatures)
	if err != nil {
		return nil, fmt.Errorf("could not verify report signatures: %w", err)
	}

	// duplicates are already rejected, so the matched set holds exactly
	// the required count; the check keeps the threshold decision local
	if len(matched) != required {
		return nil, InvalidSignatureCountError{
			Digest:   digest,
			Expected: required,
			Got:      len(matched),
		}
	}

	e.log.Debug().
		Hex("digest", digest[:]).
		Uint64("snapshot_version", snapshot.Version()).
		Int("signatures", len(matched)).
		Msg("report verified")

	return report.Data, nil
}
