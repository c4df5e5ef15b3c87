package feed

import (
	"errors"
	"fmt"
)

// InvalidEncodingError indicates a report byte encoding that could not be
// decoded: truncated input, inconsistent length fields, or invalid hex text.
type InvalidEncodingError struct {
	err error
}

func NewInvalidEncodingErrorf(msg string, args ...interface{}) error {
	return InvalidEncodingError{
		err: fmt.Errorf(msg, args...),
	}
}

func (e InvalidEncodingError) Error() string {
	return e.err.Error()
}

func (e InvalidEncodingError) Unwrap() error {
	return e.err
}

func IsInvalidEncodingError(err error) bool {
	var errInvalidEncoding InvalidEncodingError
	return errors.As(err, &errInvalidEncoding)
}

// MismatchedSignatureArraysError indicates a report whose r and s signature
// component arrays differ in length. It is detected during decoding, before
// any cryptographic work.
type MismatchedSignatureArraysError struct {
	NumR int
	NumS int
}

func (e MismatchedSignatureArraysError) Error() string {
	return fmt.Sprintf("signature component arrays differ in length (r: %d, s: %d)", e.NumR, e.NumS)
}

func IsMismatchedSignatureArraysError(err error) bool {
	var errMismatched MismatchedSignatureArraysError
	return errors.As(err, &errMismatched)
}

// InvalidDigestLengthError indicates a config digest that is not exactly
// DigestLen bytes.
type InvalidDigestLengthError struct {
	Got int
}

func NewInvalidDigestLengthError(got int) error {
	return InvalidDigestLengthError{Got: got}
}

func (e InvalidDigestLengthError) Error() string {
	return fmt.Sprintf("config digest must be %d bytes, got %d", DigestLen, e.Got)
}

func IsInvalidDigestLengthError(err error) bool {
	var errInvalidDigestLength InvalidDigestLengthError
	return errors.As(err, &errInvalidDigestLength)
}

// InvalidFaultToleranceError indicates a fault tolerance outside the
// permitted [MinFaultTolerance, MaxFaultTolerance] range.
type InvalidFaultToleranceError struct {
	F int
}

func (e InvalidFaultToleranceError) Error() string {
	return fmt.Sprintf("fault tolerance must be in [%d, %d], got %d",
		MinFaultTolerance, MaxFaultTolerance, e.F)
}

func IsInvalidFaultToleranceError(err error) bool {
	var errInvalidFaultTolerance InvalidFaultToleranceError
	return errors.As(err, &errInvalidFaultTolerance)
}

// ExcessOraclesError indicates an oracle set larger than the protocol
// maximum of MaxOracles signers.
type ExcessOraclesError struct {
	Count int
}

func (e ExcessOraclesError) Error() string {
	return fmt.Sprintf("oracle set holds %d signers, protocol maximum is %d", e.Count, MaxOracles)
}

func IsExcessOraclesError(err error) bool {
	var errExcessOracles ExcessOraclesError
	return errors.As(err, &errExcessOracles)
}

// InsufficientOraclesError indicates an oracle set too small for the
// requested fault tolerance: Byzantine quorum requires strictly more than
// 3f signers.
type InsufficientOraclesError struct {
	Count int
	F     int
}

func (e InsufficientOraclesError) Error() string {
	return fmt.Sprintf("oracle set holds %d signers, need more than %d for fault tolerance %d",
		e.Count, 3*e.F, e.F)
}

func IsInsufficientOraclesError(err error) bool {
	var errInsufficientOracles InsufficientOraclesError
	return errors.As(err, &errInsufficientOracles)
}

// InvalidOracleKeyLengthError indicates an oracle public key that is not
// exactly PublicKeyLen bytes.
type InvalidOracleKeyLengthError struct {
	Index int
	Got   int
}

func (e InvalidOracleKeyLengthError) Error() string {
	return fmt.Sprintf("oracle key %d must be %d bytes, got %d", e.Index, PublicKeyLen, e.Got)
}

func IsInvalidOracleKeyLengthError(err error) bool {
	var errInvalidOracleKeyLength InvalidOracleKeyLengthError
	return errors.As(err, &errInvalidOracleKeyLength)
}

// ZeroOracleKeyError indicates an all-zero oracle public key.
type ZeroOracleKeyError struct {
	Index int
}

func (e ZeroOracleKeyError) Error() string {
	return fmt.Sprintf("oracle key %d is all-zero", e.Index)
}

func IsZeroOracleKeyError(err error) bool {
	var errZeroOracleKey ZeroOracleKeyError
	return errors.As(err, &errZeroOracleKey)
}

// DuplicateOracleKeyError indicates an oracle key appearing more than once
// within a single configuration.
type DuplicateOracleKeyError struct {
	Index int
	Key   OracleKey
}

func (e DuplicateOracleKeyError) Error() string {
	return fmt.Sprintf("oracle key %d (%s) appears more than once", e.Index, e.Key)
}

func IsDuplicateOracleKeyError(err error) bool {
	var errDuplicateOracleKey DuplicateOracleKeyError
	return errors.As(err, &errDuplicateOracleKey)
}
