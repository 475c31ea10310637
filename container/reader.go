package container

import (
	"github.com/arloliu/wirecodec/compress"
	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/internal/hash"
)

// Envelope is the result of unwrapping a container: the decompressed
// payload plus the metadata a caller needs to decode it.
type Envelope struct {
	Payload    []byte
	Endianness endian.EndianEngine
}

// Read parses the header from data and decompresses the body,
// verifying the checksum recorded in the header. On success the
// returned Envelope's Payload is ready to hand to codec.NewDecoder.
func Read(data []byte) (Envelope, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Envelope{}, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return Envelope{}, err
	}

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return Envelope{}, err
	}

	if uint64(len(payload)) != h.OriginalLength {
		return Envelope{}, ErrChecksumMismatch
	}
	if hash.ID(string(payload)) != h.Checksum {
		return Envelope{}, ErrChecksumMismatch
	}

	return Envelope{Payload: payload, Endianness: h.Endianness}, nil
}
