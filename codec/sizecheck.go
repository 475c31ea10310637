package codec

import (
	"fmt"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/limit"
)

// SizeChecker is a dry-run twin of Encoder: it exposes the identical
// method set (EncodeBool, EncodeUint32, EncodeString, ...) with
// identical framing rules, but writes no bytes anywhere. It only
// forwards byte counts to the injected size-limit policy and an
// internal counter, answering "how many bytes would this value
// occupy?" — used to pre-validate against a cap before allocating an
// output buffer, and to size that buffer exactly (see Invariant 2:
// size agreement).
//
// SizeChecker shares every Encode* method's logic with Encoder through
// the frameSink interface; the two can never silently drift apart.
type SizeChecker struct {
	limitedSink
	size int
}

var _ frameSink = (*SizeChecker)(nil)

// NewSizeChecker creates a SizeChecker using engine's framing rules
// (fixed-width field widths and tag/length sizes do not depend on byte
// order, but length-before-limit accounting must still match the
// eventual encode exactly) and policy for cap pre-validation.
func NewSizeChecker(engine endian.EndianEngine, policy limit.Policy) *SizeChecker {
	return &SizeChecker{limitedSink: limitedSink{eng: engine, pol: policy}}
}

// Size returns the number of bytes accounted so far.
func (s *SizeChecker) Size() int { return s.size }

func (s *SizeChecker) writeRaw(p []byte) error {
	if err := s.account(len(p)); err != nil {
		return err
	}
	s.size += len(p)

	return nil
}

func (s *SizeChecker) reserve(n int) (int, error) {
	offset := s.size
	if err := s.writeRaw(make([]byte, n)); err != nil {
		return 0, err
	}

	return offset, nil
}

func (s *SizeChecker) patchUint64(int, uint64) {
	// SizeChecker never materializes bytes, so there is nothing to
	// overwrite: the reserved 8 bytes were already counted by reserve.
}

func (s *SizeChecker) EncodeBool(v bool) error            { return frameBool(s, v) }
func (s *SizeChecker) EncodeUint8(v uint8) error           { return frameUint8(s, v) }
func (s *SizeChecker) EncodeInt8(v int8) error             { return frameInt8(s, v) }
func (s *SizeChecker) EncodeUint16(v uint16) error         { return frameUint16(s, v) }
func (s *SizeChecker) EncodeUint32(v uint32) error         { return frameUint32(s, v) }
func (s *SizeChecker) EncodeUint64(v uint64) error         { return frameUint64(s, v) }
func (s *SizeChecker) EncodeInt16(v int16) error           { return frameInt16(s, v) }
func (s *SizeChecker) EncodeInt32(v int32) error           { return frameInt32(s, v) }
func (s *SizeChecker) EncodeInt64(v int64) error           { return frameInt64(s, v) }
func (s *SizeChecker) EncodeFloat32(v float32) error       { return frameFloat32(s, v) }
func (s *SizeChecker) EncodeFloat64(v float64) error       { return frameFloat64(s, v) }
func (s *SizeChecker) EncodeUint128(v [16]byte) error      { return frameUint128(s, v) }
func (s *SizeChecker) EncodeInt128(v [16]byte) error       { return frameUint128(s, v) }
func (s *SizeChecker) EncodeChar(r rune) error             { return frameChar(s, r) }
func (s *SizeChecker) EncodeString(str string) error       { return frameString(s, str) }
func (s *SizeChecker) EncodeBytes(b []byte) error          { return frameBytes(s, b) }
func (s *SizeChecker) EncodeOptionNone() error             { return frameOptionTag(s, false) }
func (s *SizeChecker) EncodeOptionSome() error             { return frameOptionTag(s, true) }
func (s *SizeChecker) EncodeSeqLen(n int) error            { return frameLen(s, n) }
func (s *SizeChecker) EncodeMapLen(n int) error            { return frameLen(s, n) }
func (s *SizeChecker) EncodeVariantTag(index uint32) error { return frameVariantTag(s, index) }

// EncodeCollectStr accounts the 8-byte length prefix plus the
// formatted bytes v.String() would produce, without formatting twice:
// String() is called exactly once.
func (s *SizeChecker) EncodeCollectStr(v fmt.Stringer) error {
	if _, err := s.reserve(8); err != nil {
		return err
	}

	return s.writeRaw([]byte(v.String()))
}
