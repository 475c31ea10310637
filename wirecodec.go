// Package wirecodec implements a compact, fixed-format binary codec
// for a closed universe of structured value shapes: booleans, fixed-
// width integers and floats, UTF-8 characters, length-prefixed
// strings and byte blobs, optionals, sequences, maps, tuples, records,
// and tagged variants.
//
// The codec is type-directed, not self-describing: a Decoder must be
// driven with the exact same sequence of Decode* calls an Encoder was
// driven with to produce the bytes it is reading. There is no support
// for inspecting a value's shape from the wire alone.
//
// # Basic usage
//
//	buf, err := wirecodec.Marshal(endian.GetLittleEndianEngine(), func(enc *codec.Encoder) error {
//	    if err := enc.EncodeString("cpu.usage"); err != nil {
//	        return err
//	    }
//	    return enc.EncodeFloat64(42.5)
//	})
//
//	err = wirecodec.Unmarshal(buf, endian.GetLittleEndianEngine(), func(dec *codec.Decoder) error {
//	    name, err := dec.DecodeString()
//	    if err != nil {
//	        return err
//	    }
//	    value, err := dec.DecodeFloat64()
//	    _ = name
//	    _ = value
//	    return err
//	})
//
// # Package structure
//
// The lower-level codec package (Encoder, Decoder, SizeChecker) does
// the framing work; this package only wraps it behind a pooled-buffer
// convenience call. The container package wraps a complete encoded
// payload in a storage/transport envelope (checksum, optional
// compression) — reach for it directly when you need that, it is not
// exposed through this package's API.
package wirecodec

import (
	"github.com/arloliu/wirecodec/codec"
	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/internal/pool"
	"github.com/arloliu/wirecodec/limit"
)

// Marshal encodes a value into a freshly allocated, exactly sized
// byte slice. encode is called twice: once against a SizeChecker to
// determine the exact output length (Invariant 2: size agreement),
// once against an Encoder writing into a pooled scratch buffer sized
// from that result. The scratch buffer is returned to the pool before
// Marshal returns; the slice handed back to the caller is a fresh copy.
func Marshal(engine endian.EndianEngine, encode func(*codec.Encoder) error) ([]byte, error) {
	return MarshalBounded(engine, limit.NewUnbounded(), encode)
}

// MarshalBounded behaves like Marshal but runs both the size-checking
// and encoding passes against policy, so a value that would exceed a
// caller-supplied cap fails before any output buffer is allocated.
func MarshalBounded(engine endian.EndianEngine, policy limit.Policy, encode func(*codec.Encoder) error) ([]byte, error) {
	sc := codec.NewSizeChecker(engine, policy)
	if err := encode(sc); err != nil {
		return nil, err
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	buf.Grow(sc.Size())
	buf.SetLength(0)

	// policy has already accounted every byte once during the
	// SizeChecker pass; re-running encode against it here would
	// double-count and fail spuriously, so the encode pass uses its
	// own fresh unbounded policy and relies on the buffer's fixed
	// capacity (from sc.Size()) to enforce the same bound structurally.
	enc := codec.NewEncoder(buf.Bytes()[:0:sc.Size()], engine, limit.NewUnbounded())
	if err := encode(enc); err != nil {
		return nil, err
	}

	out := make([]byte, len(enc.Bytes()))
	copy(out, enc.Bytes())

	return out, nil
}

// Unmarshal decodes data by calling decode against a Decoder over the
// whole slice.
func Unmarshal(data []byte, engine endian.EndianEngine, decode func(*codec.Decoder) error) error {
	dec := codec.NewDecoder(data, engine, limit.NewUnbounded())

	return decode(dec)
}
