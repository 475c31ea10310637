package codec

import (
	"iter"

	"github.com/arloliu/wirecodec/internal/pool"
)

// EncodeSlice writes the length-prefixed sequence framing for a slice
// whose length is already known, then calls encodeElem once per
// element in order.
//
// Example:
//
//	err := codec.EncodeSlice(enc, values, func(enc *codec.Encoder, v int32) error {
//	    return enc.EncodeInt32(v)
//	})
func EncodeSlice[T any](e *Encoder, values []T, encodeElem func(*Encoder, T) error) error {
	if err := e.EncodeSeqLen(len(values)); err != nil {
		return err
	}
	for _, v := range values {
		if err := encodeElem(e, v); err != nil {
			return err
		}
	}

	return nil
}

// EncodeSeq writes the length-prefixed sequence framing for an
// iter.Seq whose total count is already known by the caller (the wire
// format requires the count up front; an iterator of unknown length
// cannot be framed, see errs.ErrSequenceMustHaveLength), then drains
// seq calling encodeElem for each value in order.
func EncodeSeq[T any](e *Encoder, n int, seq iter.Seq[T], encodeElem func(*Encoder, T) error) error {
	if err := e.EncodeSeqLen(n); err != nil {
		return err
	}

	var encErr error
	seq(func(v T) bool {
		if encErr = encodeElem(e, v); encErr != nil {
			return false
		}

		return true
	})

	return encErr
}

// EncodeMap writes the length-prefixed map framing for an iter.Seq2
// whose total pair count is already known, then drains seq calling
// encodeEntry for each key/value pair in order.
func EncodeMap[K, V any](e *Encoder, n int, seq iter.Seq2[K, V], encodeEntry func(*Encoder, K, V) error) error {
	if err := e.EncodeMapLen(n); err != nil {
		return err
	}

	var encErr error
	seq(func(k K, v V) bool {
		if encErr = encodeEntry(e, k, v); encErr != nil {
			return false
		}

		return true
	})

	return encErr
}

// DecodeSlice reads the 8-byte element count, then calls decodeElem
// that many times, returning the accumulated slice. Each decodeElem
// call already runs against the decoder's own size-limit policy, so a
// maliciously large count still cannot force an unbounded allocation:
// the first decodeElem failure (most likely errs.ErrSizeLimit once the
// underlying data is exhausted) aborts the loop.
func DecodeSlice[T any](d *Decoder, decodeElem func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.DecodeSeqLen()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, clampCap(n))
	for i := uint64(0); i < n; i++ {
		v, err := decodeElem(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// DecodeMap reads the 8-byte pair count, then calls decodeEntry that
// many times, returning the accumulated map.
func DecodeMap[K comparable, V any](d *Decoder, decodeEntry func(*Decoder) (K, V, error)) (map[K]V, error) {
	n, err := d.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	out := make(map[K]V, clampCap(n))
	for i := uint64(0); i < n; i++ {
		k, v, err := decodeEntry(d)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}

// batchSize bounds how many elements DecodeInt64Slice/DecodeFloat64Slice/
// DecodeStringSlice decode into a pooled scratch buffer per chunk,
// before copying that chunk out and reusing the scratch buffer for the
// next one. This keeps the pooled buffer's own allocation small and
// reusable regardless of how large the wire-declared count is, instead
// of sizing it to the (attacker-controlled) count up front.
const batchSize = 512

// DecodeInt64Slice is a fast path for DecodeSlice(d, (*Decoder).DecodeInt64)
// for the common case of decoding a large homogeneous numeric column: it
// decodes in fixed-size batches into a pooled []int64 scratch buffer,
// appending each batch to the result, instead of growing the result
// slice element by element.
func DecodeInt64Slice(d *Decoder) ([]int64, error) {
	n, err := d.DecodeSeqLen()
	if err != nil {
		return nil, err
	}

	scratch, cleanup := pool.GetInt64Slice(batchSize)
	defer cleanup()

	out := make([]int64, 0, clampCap(n))
	for remaining := n; remaining > 0; {
		chunk := scratch
		if uint64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}
		for i := range chunk {
			v, err := d.DecodeInt64()
			if err != nil {
				return nil, err
			}
			chunk[i] = v
		}
		out = append(out, chunk...)
		remaining -= uint64(len(chunk))
	}

	return out, nil
}

// DecodeFloat64Slice is the float64 counterpart of DecodeInt64Slice.
func DecodeFloat64Slice(d *Decoder) ([]float64, error) {
	n, err := d.DecodeSeqLen()
	if err != nil {
		return nil, err
	}

	scratch, cleanup := pool.GetFloat64Slice(batchSize)
	defer cleanup()

	out := make([]float64, 0, clampCap(n))
	for remaining := n; remaining > 0; {
		chunk := scratch
		if uint64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}
		for i := range chunk {
			v, err := d.DecodeFloat64()
			if err != nil {
				return nil, err
			}
			chunk[i] = v
		}
		out = append(out, chunk...)
		remaining -= uint64(len(chunk))
	}

	return out, nil
}

// DecodeStringSlice is the string counterpart of DecodeInt64Slice. Each
// element is decoded borrowed (zero-copy, aliasing the input) into the
// scratch buffer, then copied into the owned result as it is appended.
func DecodeStringSlice(d *Decoder) ([]string, error) {
	n, err := d.DecodeSeqLen()
	if err != nil {
		return nil, err
	}

	scratch, cleanup := pool.GetStringSlice(batchSize)
	defer cleanup()

	out := make([]string, 0, clampCap(n))
	for remaining := n; remaining > 0; {
		chunk := scratch
		if uint64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}
		for i := range chunk {
			v, err := d.DecodeStringBorrowed()
			if err != nil {
				return nil, err
			}
			chunk[i] = string([]byte(v))
		}
		out = append(out, chunk...)
		remaining -= uint64(len(chunk))
	}

	return out, nil
}

// clampCap bounds a wire-supplied count before using it as a slice/map
// capacity hint, so a declared count far larger than the remaining
// input cannot itself trigger an oversized up-front allocation; the
// real admission control happens per-element through the decoder's
// size-limit policy.
func clampCap(n uint64) int {
	const max = 4096
	if n > max {
		return max
	}

	return int(n)
}
