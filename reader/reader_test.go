package reader

import (
	"errors"
	"testing"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExact(t *testing.T) {
	r := New([]byte{1, 2, 3, 4}, endian.GetLittleEndianEngine())
	b, err := r.ReadExact(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 2, r.Len())

	_, err = r.ReadExact(3)
	require.ErrorIs(t, err, errs.ErrSizeLimit)
}

func TestReadUint16_LittleEndian(t *testing.T) {
	r := New([]byte{0x34, 0x12}, endian.GetLittleEndianEngine())
	v, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestReadUint32_BigEndian(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04}, endian.GetBigEndianEngine())
	v, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)
}

func TestReadUint64_Underflow(t *testing.T) {
	r := New([]byte{1, 2, 3}, endian.GetLittleEndianEngine())
	_, err := r.ReadUint64()
	require.ErrorIs(t, err, errs.ErrSizeLimit)
}

func TestReadFloat64(t *testing.T) {
	// 1.0 as float64 little-endian
	data := []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F}
	r := New(data, endian.GetLittleEndianEngine())
	v, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 0)
}

func TestForwardReadBytes(t *testing.T) {
	r := New([]byte{1, 2, 3, 4}, endian.GetLittleEndianEngine())
	b, err := r.ForwardReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.Equal(t, 1, r.Len())
}

func TestForwardReadStr_Valid(t *testing.T) {
	r := New([]byte("hi\x00"), endian.GetLittleEndianEngine())
	s, err := r.ForwardReadStr(2)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestForwardReadStr_Empty(t *testing.T) {
	r := New([]byte{}, endian.GetLittleEndianEngine())
	s, err := r.ForwardReadStr(0)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestForwardReadStr_InvalidUTF8(t *testing.T) {
	r := New([]byte{0xff, 0xfe}, endian.GetLittleEndianEngine())
	_, err := r.ForwardReadStr(2)
	require.Error(t, err)
	var target *errs.InvalidUTF8Error
	assert.True(t, errors.As(err, &target))
}

func TestPeekByteAndReadByte(t *testing.T) {
	r := New([]byte{0x05}, endian.GetLittleEndianEngine())
	b, err := r.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(5), b)
	assert.Equal(t, 1, r.Len())

	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(5), b)
	assert.Equal(t, 0, r.Len())

	_, err = r.ReadByte()
	require.ErrorIs(t, err, errs.ErrSizeLimit)
}
