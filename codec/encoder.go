package codec

import (
	"fmt"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/errs"
	"github.com/arloliu/wirecodec/limit"
)

// Encoder serializes a tree of typed values into a caller-provided
// bounded byte buffer.
//
// Encoder guarantees that every value produces exactly the bytes a
// matching Decoder expects and no more. Every Encode* method appends
// into the caller's buffer and never grows it past cap(buf); the
// framing helpers do build a small temporary slice per call for the
// bytes they append.
//
// Encoder is not safe for concurrent use. A single Encoder is owned
// exclusively by its caller for the duration of one top-level encode
// call.
type Encoder struct {
	limitedSink
	buf []byte
}

var _ frameSink = (*Encoder)(nil)

// NewEncoder creates an Encoder that appends into buf.
//
// len(buf) is the current write position (normally 0 for a fresh
// buffer) and cap(buf) is the hard bound: appends that would exceed it
// fail with errs.ErrCapacity. engine selects the byte order for every
// multi-byte field; policy accounts every framed byte independently of
// the buffer's own capacity and may fail first with errs.ErrSizeLimit.
func NewEncoder(buf []byte, engine endian.EndianEngine, policy limit.Policy) *Encoder {
	return &Encoder{
		limitedSink: limitedSink{eng: engine, pol: policy},
		buf:         buf,
	}
}

// Bytes returns the bytes written so far. The returned slice aliases
// the caller's buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// writeRaw implements frameSink.
func (e *Encoder) writeRaw(p []byte) error {
	if err := e.account(len(p)); err != nil {
		return err
	}
	if len(e.buf)+len(p) > cap(e.buf) {
		return errs.ErrCapacity
	}
	e.buf = append(e.buf, p...)

	return nil
}

// reserve implements frameSink: appends n zero bytes and returns their
// offset, for EncodeCollectStr's back-patch.
func (e *Encoder) reserve(n int) (int, error) {
	offset := len(e.buf)
	if err := e.writeRaw(make([]byte, n)); err != nil {
		return 0, err
	}

	return offset, nil
}

// patchUint64 implements frameSink: overwrites the 8 bytes at offset.
func (e *Encoder) patchUint64(offset int, v uint64) {
	e.eng.PutUint64(e.buf[offset:offset+8], v)
}

// EncodeBool writes v as a single 0x00/0x01 byte.
func (e *Encoder) EncodeBool(v bool) error { return frameBool(e, v) }

// EncodeUint8 writes v as a single byte.
func (e *Encoder) EncodeUint8(v uint8) error { return frameUint8(e, v) }

// EncodeInt8 writes v as a single byte, two's complement.
func (e *Encoder) EncodeInt8(v int8) error { return frameInt8(e, v) }

// EncodeUint16 writes v in the configured endianness.
func (e *Encoder) EncodeUint16(v uint16) error { return frameUint16(e, v) }

// EncodeUint32 writes v in the configured endianness.
func (e *Encoder) EncodeUint32(v uint32) error { return frameUint32(e, v) }

// EncodeUint64 writes v in the configured endianness.
func (e *Encoder) EncodeUint64(v uint64) error { return frameUint64(e, v) }

// EncodeInt16 writes v in the configured endianness, two's complement.
func (e *Encoder) EncodeInt16(v int16) error { return frameInt16(e, v) }

// EncodeInt32 writes v in the configured endianness, two's complement.
func (e *Encoder) EncodeInt32(v int32) error { return frameInt32(e, v) }

// EncodeInt64 writes v in the configured endianness, two's complement.
func (e *Encoder) EncodeInt64(v int64) error { return frameInt64(e, v) }

// EncodeFloat32 writes v as IEEE-754 binary32 in the configured
// endianness.
func (e *Encoder) EncodeFloat32(v float32) error { return frameFloat32(e, v) }

// EncodeFloat64 writes v as IEEE-754 binary64 in the configured
// endianness.
func (e *Encoder) EncodeFloat64(v float64) error { return frameFloat64(e, v) }

// EncodeUint128 writes the 16 bytes of v verbatim; the caller is
// responsible for having placed its two 64-bit limbs into v in the
// configured endianness the same way it would for a uint64 (see
// DESIGN.md Open Question 2 — 128-bit integers are unconditional, no
// build tag, no silent truncation).
func (e *Encoder) EncodeUint128(v [16]byte) error { return frameUint128(e, v) }

// EncodeInt128 writes the 16 bytes of v verbatim, two's complement.
func (e *Encoder) EncodeInt128(v [16]byte) error { return frameUint128(e, v) }

// EncodeChar writes r as its UTF-8 form, 1 to 4 bytes, no length
// prefix. Surrogate code points are rejected with
// *errs.InvalidCharError (see DESIGN.md Open Question 1).
func (e *Encoder) EncodeChar(r rune) error { return frameChar(e, r) }

// EncodeString writes an 8-byte length prefix followed by the UTF-8
// bytes of s.
func (e *Encoder) EncodeString(s string) error { return frameString(e, s) }

// EncodeBytes writes an 8-byte length prefix followed by b verbatim.
func (e *Encoder) EncodeBytes(b []byte) error { return frameBytes(e, b) }

// EncodeCollectStr serializes the formatted form of v: it reserves 8
// bytes for the length prefix, streams v.String()'s bytes into the
// buffer, then overwrites the reserved prefix with the final count.
// This is the only site where the encoder rewrites previously written
// bytes.
//
// Formatting itself (v.String()) cannot fail in Go the way a Display
// implementation can in the source language; *errs.FmtError is kept in
// the error taxonomy for drivers that wrap a fallible formatter (e.g.
// one backed by an io.Writer) and need to surface that failure through
// this same call.
func (e *Encoder) EncodeCollectStr(v fmt.Stringer) error {
	offset, err := e.reserve(8)
	if err != nil {
		return err
	}

	formatted := []byte(v.String())
	if err := e.writeRaw(formatted); err != nil {
		return err
	}

	e.patchUint64(offset, uint64(len(formatted)))

	return nil
}

// EncodeOptionNone writes the "none" tag (0x00) with no payload.
func (e *Encoder) EncodeOptionNone() error { return frameOptionTag(e, false) }

// EncodeOptionSome writes the "some" tag (0x01). The caller must follow
// this with exactly one Encode* call for the payload.
func (e *Encoder) EncodeOptionSome() error { return frameOptionTag(e, true) }

// EncodeSeqLen writes the 8-byte element count prefixing a sequence.
// n must be a known, non-negative length; the encoder cannot serialize
// an iterator of unknown length (errs.ErrSequenceMustHaveLength).
func (e *Encoder) EncodeSeqLen(n int) error { return frameLen(e, n) }

// EncodeMapLen writes the 8-byte pair count prefixing a map.
func (e *Encoder) EncodeMapLen(n int) error { return frameLen(e, n) }

// EncodeVariantTag writes the 4-byte variant index. The caller follows
// this with however many Encode* calls the variant's payload shape
// requires (zero for a unit variant, one for a newtype variant, N for a
// tuple/record variant).
func (e *Encoder) EncodeVariantTag(index uint32) error { return frameVariantTag(e, index) }

// Tuples, records, and newtype wrappers contribute only their payload
// bytes in field order: there is no Encoder method for them at all.
// The caller simply issues the field Encode* calls directly, in
// declaration order. Unit values contribute zero bytes and likewise
// need no call.
