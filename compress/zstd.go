package compress

// ZstdCompressor provides Zstandard compression for envelope payloads.
//
// Zstd trades compression speed for ratio, making it the right choice
// when the payload is written once and read many times, or shipped
// over a bandwidth-constrained link.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
