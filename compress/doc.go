// Package compress provides compression and decompression codecs for encoded
// preference-row blobs.
//
// Compression is applied per row blob, after the integer codec has encoded a
// counterpart-index or rating-value run. It is the second stage of a two-stage
// strategy:
//
//  1. **Encoding**: Exploits structure in the run (gap transform, bit packing,
//     variable-byte groups)
//  2. **Compression**: Further reduces the encoded bytes with a
//     general-purpose algorithm
//
// The package implements the second stage with four algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
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
// # Algorithm Selection Guide
//
// | Workload Type       | Recommended | Reason                         |
// |---------------------|-------------|--------------------------------|
// | Memory-constrained  | Zstd        | Best compression ratio         |
// | Build-heavy         | S2          | Balanced speed and compression |
// | Read-heavy          | LZ4         | Fastest decompression          |
// | CPU-constrained     | None        | No compression overhead        |
//
// Row blobs are short: expect lower ratios than on long streams, and prefer
// None or LZ4 when rows average under a few dozen entries (the per-blob
// header overhead of the heavier algorithms can exceed the savings).
//
// # Build Configurations
//
// Zstd has two implementations with identical exported surfaces: a cgo
// binding (valyala/gozstd) used when cgo is enabled, and a pure-Go
// implementation (klauspost/compress/zstd) used otherwise. S2 and LZ4 are
// pure Go in all configurations.
//
// # Thread Safety
//
// All codec implementations are stateless values safe for concurrent use;
// internal encoder/decoder pools handle reuse.
//
// # Integration with the codec package
//
// The codec package wraps any integer codec with a compressor via
// codec.NewCompressed; the store never calls this package directly.
package compress
