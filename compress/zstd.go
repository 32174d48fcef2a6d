package compress

// ZstdCompressor provides Zstandard compression for encoded preference rows.
//
// Zstd favors compression ratio over speed, making it the right choice when
// the store must hold the largest datasets in the least memory and reads can
// tolerate the heavier decompression:
//   - Archival-scale rating datasets kept resident for batch recommenders
//   - Dense rows (power users, popular items) where ratio wins back the most
//   - Value planes with repetitive rating levels
//
// Two implementations share this type: a cgo binding when cgo is enabled and
// a pure-Go implementation otherwise. Blob formats are interchangeable.
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
