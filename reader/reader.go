// Package reader provides the cursor primitive the decoder parses
// through: an immutable-byte-slice reader with fixed-width reads and
// borrow-forwarding for strings and byte blobs.
//
// Reader owns no bytes; it borrows the caller's slice. Its unread
// suffix is always a contiguous tail of the original slice, and the
// cursor advances strictly monotonically — there is no seeking or
// look-ahead beyond the single-byte width peek character decoding
// needs (which the codec package implements on top of ReadExact, not
// here).
package reader

import (
	"unicode/utf8"
	"unsafe"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/errs"
)

// Reader is a cursor over an immutable byte slice.
//
// Reader is not safe for concurrent use. A single Reader is owned
// exclusively by the Decoder that created it for the duration of one
// top-level decode call.
type Reader struct {
	data   []byte
	engine endian.EndianEngine
}

// New creates a Reader over data using the given endianness for
// fixed-width reads.
func New(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.data)
}

// ReadExact copies n bytes out, advancing the cursor, or fails with
// errs.ErrSizeLimit if fewer than n bytes remain.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n > len(r.data) {
		return nil, errs.ErrSizeLimit
	}
	out := make([]byte, n)
	copy(out, r.data[:n])
	r.data = r.data[n:]

	return out, nil
}

// PeekByte returns the next byte without advancing the cursor, or
// fails with errs.ErrSizeLimit if the reader is exhausted.
func (r *Reader) PeekByte() (byte, error) {
	if len(r.data) == 0 {
		return 0, errs.ErrSizeLimit
	}

	return r.data[0], nil
}

// ReadByte consumes and returns one byte.
func (r *Reader) ReadByte() (byte, error) {
	if len(r.data) == 0 {
		return 0, errs.ErrSizeLimit
	}
	b := r.data[0]
	r.data = r.data[1:]

	return b, nil
}

// advance checks n bytes are available and slices them off the front,
// returning the consumed span.
func (r *Reader) advance(n int) ([]byte, error) {
	if n > len(r.data) {
		return nil, errs.ErrSizeLimit
	}
	span := r.data[:n]
	r.data = r.data[n:]

	return span, nil
}

// ReadUint16 decodes a fixed-width uint16 and advances the cursor.
func (r *Reader) ReadUint16() (uint16, error) {
	span, err := r.advance(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(span), nil
}

// ReadUint32 decodes a fixed-width uint32 and advances the cursor.
func (r *Reader) ReadUint32() (uint32, error) {
	span, err := r.advance(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(span), nil
}

// ReadUint64 decodes a fixed-width uint64 and advances the cursor.
func (r *Reader) ReadUint64() (uint64, error) {
	span, err := r.advance(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(span), nil
}

// ReadInt16 decodes a fixed-width two's-complement int16 and advances
// the cursor.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}

	return int16(v), nil //nolint:gosec
}

// ReadInt32 decodes a fixed-width two's-complement int32 and advances
// the cursor.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}

	return int32(v), nil //nolint:gosec
}

// ReadInt64 decodes a fixed-width two's-complement int64 and advances
// the cursor.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}

	return int64(v), nil //nolint:gosec
}

// ReadFloat32 decodes an IEEE-754 float32 and advances the cursor.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}

	return *(*float32)(unsafe.Pointer(&v)), nil
}

// ReadFloat64 decodes an IEEE-754 float64 and advances the cursor.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}

	return *(*float64)(unsafe.Pointer(&v)), nil
}

// ForwardReadBytes returns the next n bytes as a borrowed slice aliasing
// the reader's underlying data, advancing the cursor. The returned
// slice is valid only as long as the original input slice is retained
// by the caller.
func (r *Reader) ForwardReadBytes(n int) ([]byte, error) {
	return r.advance(n)
}

// ForwardReadStr validates the next n bytes as UTF-8 and returns them
// as a borrowed string aliasing the reader's underlying data, advancing
// the cursor.
func (r *Reader) ForwardReadStr(n int) (string, error) {
	span, err := r.advance(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(span) {
		return "", &errs.InvalidUTF8Error{Cause: firstInvalidUTF8Error(span)}
	}
	if len(span) == 0 {
		return "", nil
	}

	return unsafe.String(&span[0], len(span)), nil
}

// firstInvalidUTF8Error builds a descriptive error for the first
// invalid byte sequence in span. span is assumed to have already
// failed utf8.Valid.
func firstInvalidUTF8Error(span []byte) error {
	for i := 0; i < len(span); {
		r, size := utf8.DecodeRune(span[i:])
		if r == utf8.RuneError && size <= 1 {
			return invalidUTF8At{offset: i}
		}
		i += size
	}

	return invalidUTF8At{offset: len(span)}
}

type invalidUTF8At struct{ offset int }

func (e invalidUTF8At) Error() string {
	return "invalid utf-8 sequence"
}
