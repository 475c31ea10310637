// Package container implements a storage/transport envelope around an
// already codec-encoded payload: a fixed header (magic, flags, original
// length, checksum) plus an optional compressed body.
//
// The envelope is deliberately kept outside the codec package: the
// value codec itself never compresses or checksums an individual
// value, it only frames bytes. Container operates one level up, on the
// complete output of an Encoder (or the complete input a Decoder will
// consume), the same way a file format wraps a payload a separate
// serializer already produced.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/format"
)

// HeaderSize is the fixed size, in bytes, of the envelope header.
const HeaderSize = 24

// Magic identifies a wirecodec envelope. It is the first four bytes of
// every header.
const Magic uint32 = 0x57434401 // "WCD" + version 1

const (
	flagBigEndian          = 0x0001
	compressionShift       = 4
	compressionMask uint16 = 0x00F0
)

var (
	// ErrInvalidHeaderSize is returned when fewer than HeaderSize bytes
	// are available to parse a header.
	ErrInvalidHeaderSize = errors.New("container: invalid header size")
	// ErrInvalidMagic is returned when the header's magic number does
	// not match Magic.
	ErrInvalidMagic = errors.New("container: invalid magic number")
	// ErrChecksumMismatch is returned when the decompressed payload's
	// checksum does not match the header's recorded checksum.
	ErrChecksumMismatch = errors.New("container: checksum mismatch")
)

// Header is the fixed-size metadata prefixing every envelope.
type Header struct {
	// Endianness records the byte order the payload's own codec frames
	// were written in. It is independent of the header's own byte
	// order, which is always little-endian so a reader can determine
	// payload endianness without first knowing it.
	Endianness endian.EndianEngine
	// Compression identifies how the body following the header was
	// compressed, or format.CompressionNone if the body is the raw
	// codec payload.
	Compression format.CompressionType
	// OriginalLength is the length, in bytes, of the payload before
	// compression.
	OriginalLength uint64
	// Checksum is the xxHash64 of the original (uncompressed) payload.
	Checksum uint64
}

// Bytes serializes h into a new HeaderSize-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint32(b[0:4], Magic)

	var flag uint16
	if h.isBigEndian() {
		flag |= flagBigEndian
	}
	flag |= uint16(h.Compression) << compressionShift
	binary.LittleEndian.PutUint16(b[4:6], flag)
	// bytes 6:8 reserved, left zero

	binary.LittleEndian.PutUint64(b[8:16], h.OriginalLength)
	binary.LittleEndian.PutUint64(b[16:24], h.Checksum)

	return b
}

func (h Header) isBigEndian() bool {
	return h.Endianness == endian.GetBigEndianEngine()
}

// ParseHeader parses a Header from the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrInvalidHeaderSize
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return Header{}, ErrInvalidMagic
	}

	flag := binary.LittleEndian.Uint16(data[4:6])

	eng := endian.GetLittleEndianEngine()
	if flag&flagBigEndian != 0 {
		eng = endian.GetBigEndianEngine()
	}
	compression := format.CompressionType((flag & compressionMask) >> compressionShift)

	h := Header{
		Endianness:     eng,
		Compression:    compression,
		OriginalLength: binary.LittleEndian.Uint64(data[8:16]),
		Checksum:       binary.LittleEndian.Uint64(data[16:24]),
	}

	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("container.Header{compression=%s, originalLength=%d, checksum=%016x}",
		h.Compression, h.OriginalLength, h.Checksum)
}
