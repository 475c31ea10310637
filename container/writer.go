package container

import (
	"github.com/arloliu/wirecodec/compress"
	"github.com/arloliu/wirecodec/endian"
	"github.com/arloliu/wirecodec/format"
	"github.com/arloliu/wirecodec/internal/hash"
	"github.com/arloliu/wirecodec/internal/pool"
)

// Write wraps payload (a complete codec-encoded value) in an envelope:
// header, then the payload compressed with the given compression type.
// engine records which byte order payload's own fixed-width fields were
// written in, so Read can report it back to the caller without the
// caller needing to pass it out of band.
func Write(payload []byte, engine endian.EndianEngine, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	h := Header{
		Endianness:     engine,
		Compression:    compression,
		OriginalLength: uint64(len(payload)),
		Checksum:       hash.ID(string(payload)),
	}

	buf := pool.GetEnvelopeBuffer()
	defer pool.PutEnvelopeBuffer(buf)

	buf.MustWrite(h.Bytes())
	buf.MustWrite(body)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
