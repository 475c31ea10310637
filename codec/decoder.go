package codec

import (
	"unicode/utf8"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/errs"
	"github.com/arloliu/wirecodec/limit"
	"github.com/arloliu/wirecodec/reader"
)

// cursorState is the decoder's internal state machine: ready ->
// ready on any successful read that leaves bytes, ready -> exhausted
// on a successful read that consumes the last byte, ready -> poisoned
// on any failure. poisoned is terminal: no further reads are attempted.
type cursorState uint8

const (
	stateReady cursorState = iota
	stateExhausted
	statePoisoned
)

// Decoder parses a byte stream back into primitive values, one
// type-directed call at a time.
//
// Decoder refuses self-describing decoding (DeserializeAny, SkipAny,
// DecodeFieldIdentifier all fail with errs.ErrDeserializeAnyNotSupported)
// because the wire format carries no type tags for non-variant values:
// the caller must already know the expected shape.
//
// Decoder is not safe for concurrent use. A single Decoder is owned
// exclusively by its caller for the duration of one top-level decode
// call.
type Decoder struct {
	r      *reader.Reader
	eng    endian.EndianEngine
	pol    limit.Policy
	state  cursorState
	poison error
}

// NewDecoder creates a Decoder over data.
func NewDecoder(data []byte, engine endian.EndianEngine, policy limit.Policy) *Decoder {
	return &Decoder{
		r:   reader.New(data, engine),
		eng: engine,
		pol: policy,
	}
}

// State reports the decoder cursor's current state: "ready",
// "exhausted", or "poisoned".
func (d *Decoder) State() string {
	switch d.state {
	case stateReady:
		return "ready"
	case stateExhausted:
		return "exhausted"
	default:
		return "poisoned"
	}
}

// fail transitions the cursor to poisoned and returns err. Once
// poisoned, every subsequent Decode* call returns this same error
// without touching the underlying data again.
func (d *Decoder) fail(err error) error {
	d.state = statePoisoned
	d.poison = err

	return err
}

// settle transitions the cursor to ready or exhausted depending on
// whether any bytes remain, after a successful read.
func (d *Decoder) settle() {
	if d.r.Len() == 0 {
		d.state = stateExhausted
	} else {
		d.state = stateReady
	}
}

// checkAlive returns the poison error if the cursor is already
// poisoned, nil otherwise. Every Decode* method calls this first.
func (d *Decoder) checkAlive() error {
	if d.state == statePoisoned {
		return d.poison
	}

	return nil
}

// account feeds n bytes to the size-limit policy before any of those
// bytes are read from the wire (length-before-limit): this is what
// stops an adversarial declared length from forcing an unbounded read
// before the policy gets a chance to reject it.
func (d *Decoder) account(n int) error {
	return d.pol.Add(uint64(n))
}

func (d *Decoder) readExact(n int) ([]byte, error) {
	if err := d.account(n); err != nil {
		return nil, err
	}

	return d.r.ReadExact(n)
}

// DecodeBool reads one byte: 0x00 -> false, 0x01 -> true, anything
// else -> *errs.InvalidBoolError.
func (d *Decoder) DecodeBool() (bool, error) {
	if err := d.checkAlive(); err != nil {
		return false, err
	}
	b, err := d.readExact(1)
	if err != nil {
		return false, d.fail(err)
	}
	switch b[0] {
	case 0:
		d.settle()
		return false, nil
	case 1:
		d.settle()
		return true, nil
	default:
		return false, d.fail(&errs.InvalidBoolError{Byte: b[0]})
	}
}

// DecodeUint8 reads a single byte.
func (d *Decoder) DecodeUint8() (uint8, error) {
	if err := d.checkAlive(); err != nil {
		return 0, err
	}
	b, err := d.readExact(1)
	if err != nil {
		return 0, d.fail(err)
	}
	d.settle()

	return b[0], nil
}

// DecodeInt8 reads a single byte as two's complement.
func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := d.DecodeUint8()
	return int8(v), err //nolint:gosec
}

func decodeFixed[T any](d *Decoder, n int, read func(*reader.Reader) (T, error)) (T, error) {
	var zero T
	if err := d.checkAlive(); err != nil {
		return zero, err
	}
	if err := d.account(n); err != nil {
		return zero, d.fail(err)
	}
	v, err := read(d.r)
	if err != nil {
		return zero, d.fail(err)
	}
	d.settle()

	return v, nil
}

// DecodeUint16 reads a fixed-width uint16 in the configured endianness.
func (d *Decoder) DecodeUint16() (uint16, error) {
	return decodeFixed(d, 2, (*reader.Reader).ReadUint16)
}

// DecodeUint32 reads a fixed-width uint32 in the configured endianness.
func (d *Decoder) DecodeUint32() (uint32, error) {
	return decodeFixed(d, 4, (*reader.Reader).ReadUint32)
}

// DecodeUint64 reads a fixed-width uint64 in the configured endianness.
func (d *Decoder) DecodeUint64() (uint64, error) {
	return decodeFixed(d, 8, (*reader.Reader).ReadUint64)
}

// DecodeInt16 reads a fixed-width int16, two's complement.
func (d *Decoder) DecodeInt16() (int16, error) {
	return decodeFixed(d, 2, (*reader.Reader).ReadInt16)
}

// DecodeInt32 reads a fixed-width int32, two's complement.
func (d *Decoder) DecodeInt32() (int32, error) {
	return decodeFixed(d, 4, (*reader.Reader).ReadInt32)
}

// DecodeInt64 reads a fixed-width int64, two's complement.
func (d *Decoder) DecodeInt64() (int64, error) {
	return decodeFixed(d, 8, (*reader.Reader).ReadInt64)
}

// DecodeFloat32 reads an IEEE-754 binary32 value.
func (d *Decoder) DecodeFloat32() (float32, error) {
	return decodeFixed(d, 4, (*reader.Reader).ReadFloat32)
}

// DecodeFloat64 reads an IEEE-754 binary64 value.
func (d *Decoder) DecodeFloat64() (float64, error) {
	return decodeFixed(d, 8, (*reader.Reader).ReadFloat64)
}

// DecodeUint128 reads 16 raw bytes verbatim (see DESIGN.md Open
// Question 2).
func (d *Decoder) DecodeUint128() ([16]byte, error) {
	if err := d.checkAlive(); err != nil {
		return [16]byte{}, err
	}
	b, err := d.readExact(16)
	if err != nil {
		return [16]byte{}, d.fail(err)
	}
	d.settle()

	var out [16]byte
	copy(out[:], b)

	return out, nil
}

// DecodeInt128 reads 16 raw bytes verbatim, two's complement.
func (d *Decoder) DecodeInt128() ([16]byte, error) {
	return d.DecodeUint128()
}

// utf8CharWidth maps a UTF-8 lead byte to the total width of the
// character it begins, in {0,1,2,3,4}. Width 0 means the byte can
// never start a valid UTF-8 sequence.
var utf8CharWidth = [256]uint8{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DecodeChar reads a UTF-8-encoded character, 1 to 4 bytes, by first
// reading one byte to determine the width from utf8CharWidth, then
// reading width-1 further bytes and validating the full span.
func (d *Decoder) DecodeChar() (rune, error) {
	if err := d.checkAlive(); err != nil {
		return 0, err
	}

	first, err := d.readExact(1)
	if err != nil {
		return 0, d.fail(err)
	}
	width := utf8CharWidth[first[0]]
	if width == 0 {
		return 0, d.fail(&errs.InvalidCharError{})
	}
	if width == 1 {
		d.settle()
		return rune(first[0]), nil
	}

	rest, err := d.readExact(int(width) - 1)
	if err != nil {
		return 0, d.fail(&errs.InvalidCharError{})
	}

	buf := append(first, rest...)
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return 0, d.fail(&errs.InvalidCharError{})
	}
	d.settle()

	return r, nil
}

// decodeLen reads the 8-byte length/count prefix shared by strings,
// byte blobs, sequences, and maps.
func (d *Decoder) decodeLen() (uint64, error) {
	if err := d.checkAlive(); err != nil {
		return 0, err
	}
	if err := d.account(8); err != nil {
		return 0, d.fail(err)
	}
	n, err := d.r.ReadUint64()
	if err != nil {
		return 0, d.fail(err)
	}
	d.settle()

	return n, nil
}

// DecodeString reads the 8-byte length prefix and that many UTF-8
// bytes, returning an owned copy.
func (d *Decoder) DecodeString() (string, error) {
	s, err := d.decodeStringSpan()
	if err != nil {
		return "", err
	}

	return string([]byte(s)), nil
}

// DecodeStringBorrowed reads the 8-byte length prefix and that many
// UTF-8 bytes, returning a string aliasing the original input slice —
// no copy, no allocation. The returned string is valid only as long as
// the caller retains the original input slice.
func (d *Decoder) DecodeStringBorrowed() (string, error) {
	return d.decodeStringSpan()
}

func (d *Decoder) decodeStringSpan() (string, error) {
	n, err := d.decodeLen()
	if err != nil {
		return "", err
	}
	if err := d.checkAlive(); err != nil {
		return "", err
	}
	if err := d.account(int(n)); err != nil {
		return "", d.fail(err)
	}
	s, err := d.r.ForwardReadStr(int(n))
	if err != nil {
		return "", d.fail(err)
	}
	d.settle()

	return s, nil
}

// DecodeBytes reads the 8-byte length prefix and that many raw bytes,
// returning an owned copy.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	b, err := d.decodeBytesSpan()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}

// DecodeBytesBorrowed reads the 8-byte length prefix and that many raw
// bytes, returning a slice aliasing the original input — no copy, no
// allocation. The returned slice is valid only as long as the caller
// retains the original input slice.
func (d *Decoder) DecodeBytesBorrowed() ([]byte, error) {
	return d.decodeBytesSpan()
}

func (d *Decoder) decodeBytesSpan() ([]byte, error) {
	n, err := d.decodeLen()
	if err != nil {
		return nil, err
	}
	if err := d.checkAlive(); err != nil {
		return nil, err
	}
	if err := d.account(int(n)); err != nil {
		return nil, d.fail(err)
	}
	b, err := d.r.ForwardReadBytes(int(n))
	if err != nil {
		return nil, d.fail(err)
	}
	d.settle()

	return b, nil
}

// DecodeOptionTag reads the one-byte option tag: 0x00 -> (false, nil)
// meaning none, 0x01 -> (true, nil) meaning the caller must now decode
// the payload, anything else -> *errs.InvalidTagError.
func (d *Decoder) DecodeOptionTag() (bool, error) {
	if err := d.checkAlive(); err != nil {
		return false, err
	}
	b, err := d.readExact(1)
	if err != nil {
		return false, d.fail(err)
	}
	switch b[0] {
	case 0:
		d.settle()
		return false, nil
	case 1:
		d.settle()
		return true, nil
	default:
		return false, d.fail(&errs.InvalidTagError{Byte: b[0]})
	}
}

// DecodeSeqLen reads the 8-byte element count prefixing a sequence.
func (d *Decoder) DecodeSeqLen() (uint64, error) { return d.decodeLen() }

// DecodeMapLen reads the 8-byte pair count prefixing a map.
func (d *Decoder) DecodeMapLen() (uint64, error) { return d.decodeLen() }

// DecodeVariantTag reads the 4-byte variant index. The caller then
// requests the payload shape (unit/newtype/tuple/record) and decodes
// it against the remaining stream.
func (d *Decoder) DecodeVariantTag() (uint32, error) {
	return decodeFixed(d, 4, (*reader.Reader).ReadUint32)
}

// DeserializeAny always fails: the wire format carries no type tags
// for non-variant values, so "decode any value, tell me what it was"
// is not expressible.
func (d *Decoder) DeserializeAny() error {
	if err := d.checkAlive(); err != nil {
		return err
	}
	return d.fail(errs.ErrDeserializeAnyNotSupported)
}

// SkipAny always fails, for the same reason as DeserializeAny: skipping
// an unknown value requires knowing its shape.
func (d *Decoder) SkipAny() error {
	if err := d.checkAlive(); err != nil {
		return err
	}
	return d.fail(errs.ErrDeserializeAnyNotSupported)
}

// DecodeFieldIdentifier always fails: records decode as anonymous
// fixed-arity tuples, so there is no on-the-wire field identifier to
// decode.
func (d *Decoder) DecodeFieldIdentifier() error {
	if err := d.checkAlive(); err != nil {
		return err
	}
	return d.fail(errs.ErrDeserializeAnyNotSupported)
}

// Records, tuples, and newtype wrappers decode as anonymous
// fixed-arity sequences of Decode* calls: there is no Decoder method
// for them at all. The caller already knows the field count and simply
// issues that many Decode* calls in order.
