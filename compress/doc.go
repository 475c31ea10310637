// Package compress provides compression and decompression codecs for
// already codec-encoded payloads.
//
// Compression operates below the codec package: it never inspects or
// changes the meaning of a value, it only shrinks or grows the byte
// string the codec produced. The container package applies it as an
// optional second stage when wrapping a payload in an envelope.
//
// # Algorithms
//
//   - None: no compression, fastest, largest output
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// GetCodec(format.CompressionType) selects a cached implementation by
// the compression type stored in a container header.
//
// # Thread safety
//
// All codec implementations are safe for concurrent use.
package compress
