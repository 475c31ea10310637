// Package errs defines the error taxonomy shared by the codec, reader,
// and size-limit packages.
//
// The taxonomy mirrors bincode's ErrorKind enum: a handful of sentinel
// errors for conditions that carry no useful payload, and a few typed
// errors for conditions that do (the offending byte, the UTF-8 decode
// error, a wrapped formatter error). Callers compare against the
// sentinels with errors.Is and unwrap the typed errors with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no useful payload.
var (
	// ErrSizeLimit covers both "the reader ran out of bytes" and "the
	// configured size-limit policy cap would be exceeded". The two are
	// intentionally conflated: both mean "we cannot read/write that many
	// bytes" from the caller's perspective.
	ErrSizeLimit = errors.New("wirecodec: size limit exceeded")

	// ErrDeserializeAnyNotSupported is returned by any decode operation
	// that asks for self-describing decoding (DeserializeAny, SkipAny,
	// DecodeFieldIdentifier). The wire format carries no type tags for
	// non-variant values, so none of these are expressible.
	ErrDeserializeAnyNotSupported = errors.New("wirecodec: self-describing decode is not supported")

	// ErrSequenceMustHaveLength is returned by the encoder and size-checker
	// when the driver cannot supply a known length for a sequence or map.
	ErrSequenceMustHaveLength = errors.New("wirecodec: sequence or map must have a known length")

	// ErrCapacity is returned by the encoder when the caller-provided
	// output buffer is full.
	ErrCapacity = errors.New("wirecodec: output buffer capacity exceeded")

	// ErrSerde is a generic custom error surfaced by the driver layer,
	// for drivers that need to report a failure with no dedicated kind.
	ErrSerde = errors.New("wirecodec: custom driver error")
)

// InvalidUTF8Error is returned when a length-prefixed string span is not
// valid UTF-8.
type InvalidUTF8Error struct {
	Cause error
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("wirecodec: invalid utf8 encoding: %v", e.Cause)
}

func (e *InvalidUTF8Error) Unwrap() error { return e.Cause }

// InvalidBoolError is returned when a decoded boolean byte is neither
// 0x00 nor 0x01.
type InvalidBoolError struct {
	Byte byte
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("wirecodec: invalid bool encoding, expected 0 or 1, found %d", e.Byte)
}

// InvalidCharError is returned when a character's first-byte width is 0
// (not a valid UTF-8 lead byte) or its continuation bytes are missing or
// invalid.
type InvalidCharError struct{}

func (e *InvalidCharError) Error() string {
	return "wirecodec: invalid char encoding"
}

// InvalidTagError is returned when an option tag byte is neither 0x00
// nor 0x01. Variant tags are 4-byte indices and never produce it.
type InvalidTagError struct {
	Byte byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("wirecodec: invalid tag encoding, found %d", e.Byte)
}

// FmtError wraps a failure from writing a formatted value during
// EncodeCollectStr.
type FmtError struct {
	Cause error
}

func (e *FmtError) Error() string {
	return fmt.Sprintf("wirecodec: format error: %v", e.Cause)
}

func (e *FmtError) Unwrap() error { return e.Cause }
