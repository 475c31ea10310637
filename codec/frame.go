// Package codec implements the encoder/decoder/size-checker triplet
// that is the hard engineering of this module: a compact, fixed-format
// binary codec for a closed universe of value shapes (primitives,
// fixed-width integers and floats, booleans, characters, strings, byte
// blobs, optionals, sequences, maps, tuples, records, and tagged
// variants).
//
// Encoder, Decoder, and SizeChecker share one set of framing rules
// (the doc comment of each Encode*/Decode* method states its byte layout); their
// consistency — byte-for-byte — is the central invariant of this
// package. Control flow is driven externally: something outside this
// package calls one primitive method at a time to walk a user-defined
// aggregate. This package never implements that traversal itself.
package codec

import (
	"math"
	"unicode/utf8"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/errs"
	"github.com/arloliu/wirecodec/limit"
)

// frameSink is the minimal write surface Encoder and SizeChecker both
// implement. Encoder appends to a caller-owned bounded buffer;
// SizeChecker only advances a byte counter. Sharing this interface is
// what keeps the two from drifting apart — every public Encode* method
// in this package is defined once, in terms of frameSink, and reused by
// both concrete types.
type frameSink interface {
	// writeRaw appends p verbatim, accounting it against the size-limit
	// policy and the sink's own capacity bound.
	writeRaw(p []byte) error
	// reserve appends n zero bytes and returns their offset within the
	// sink, for EncodeCollectStr's back-patch. SizeChecker counts and
	// accounts the n bytes without storing them and returns the offset
	// they would occupy.
	reserve(n int) (int, error)
	// patchUint64 overwrites the 8 bytes at offset with v in the sink's
	// configured endianness. SizeChecker implements this as a no-op.
	patchUint64(offset int, v uint64)
	// engine returns the configured endianness.
	engine() endian.EndianEngine
}

// frame holds the shared framing logic as free functions operating on
// any frameSink, so Encoder and SizeChecker get byte-identical
// behavior without either one being implemented in terms of the other.

func frameBool(s frameSink, v bool) error {
	if v {
		return s.writeRaw([]byte{1})
	}

	return s.writeRaw([]byte{0})
}

func frameUint8(s frameSink, v uint8) error {
	return s.writeRaw([]byte{v})
}

func frameInt8(s frameSink, v int8) error {
	return s.writeRaw([]byte{byte(v)})
}

func frameUint16(s frameSink, v uint16) error {
	buf := make([]byte, 2)
	s.engine().PutUint16(buf, v)

	return s.writeRaw(buf)
}

func frameUint32(s frameSink, v uint32) error {
	buf := make([]byte, 4)
	s.engine().PutUint32(buf, v)

	return s.writeRaw(buf)
}

func frameUint64(s frameSink, v uint64) error {
	buf := make([]byte, 8)
	s.engine().PutUint64(buf, v)

	return s.writeRaw(buf)
}

func frameInt16(s frameSink, v int16) error { return frameUint16(s, uint16(v)) }
func frameInt32(s frameSink, v int32) error { return frameUint32(s, uint32(v)) }
func frameInt64(s frameSink, v int64) error { return frameUint64(s, uint64(v)) }

func frameFloat32(s frameSink, v float32) error {
	return frameUint32(s, math.Float32bits(v))
}

func frameFloat64(s frameSink, v float64) error {
	return frameUint64(s, math.Float64bits(v))
}

func frameUint128(s frameSink, v [16]byte) error {
	return s.writeRaw(v[:])
}

func frameChar(s frameSink, r rune) error {
	if !utf8.ValidRune(r) {
		return &errs.InvalidCharError{}
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	return s.writeRaw(buf[:n])
}

func frameString(s frameSink, str string) error {
	if err := frameUint64(s, uint64(len(str))); err != nil {
		return err
	}

	return s.writeRaw([]byte(str))
}

func frameBytes(s frameSink, b []byte) error {
	if err := frameUint64(s, uint64(len(b))); err != nil {
		return err
	}

	return s.writeRaw(b)
}

func frameOptionTag(s frameSink, present bool) error {
	if present {
		return s.writeRaw([]byte{1})
	}

	return s.writeRaw([]byte{0})
}

func frameLen(s frameSink, n int) error {
	if n < 0 {
		return errs.ErrSequenceMustHaveLength
	}

	return frameUint64(s, uint64(n))
}

func frameVariantTag(s frameSink, index uint32) error {
	return frameUint32(s, index)
}

// limitedSink adds shared size-limit-policy accounting to a frameSink.
// Both Encoder and SizeChecker embed this to report accounted bytes
// through limit.Policy before any bytes are written/counted — this is
// what gives decode-side length-before-limit its encode-side mirror.
type limitedSink struct {
	eng endian.EndianEngine
	pol limit.Policy
}

func (l *limitedSink) engine() endian.EndianEngine { return l.eng }

func (l *limitedSink) account(n int) error {
	return l.pol.Add(uint64(n))
}
