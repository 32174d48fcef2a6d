// Package codec provides window codecs for the uint32 planes of a
// preference store.
//
// A preference store keeps all index lists in one flat []uint32 and all
// rating lists in another, with each row occupying a contiguous window of
// both. Codecs compress and expand exactly those windows:
//
//	type Codec interface {
//	    Encode(values []uint32, offset, count int) ([]byte, error)
//	    Decode(data []byte, dst []uint32, offset, count int) error
//	    Integrated() bool
//	}
//
// Encode reads values[offset : offset+count] and returns a standalone blob.
// Decode writes exactly count integers into dst[offset : offset+count] and
// fails with errs.ErrCorruptedBlob when the blob cannot produce them: short
// data, trailing garbage, and malformed headers are all rejected rather than
// silently truncated or padded.
//
// All implementations are stateless values, safe for concurrent use by any
// number of goroutines.
//
// # Built-in Codecs
//
// Raw - fixed 32-bit words:
//
//	c := codec.NewRawCodec(endian.GetLittleEndianEngine())
//	blob, _ := c.Encode(vals, 0, len(vals))  // 4 bytes per value
//
// Baseline with no compression. Decoding on a matching native byte order
// reduces to a single copy. Use as the reference point when measuring other
// codecs.
//
// Packed - fixed-width bit packing:
//
//	c := codec.NewPackedCodec()
//	blob, _ := c.Encode(vals, 0, len(vals))  // 1 byte header + ceil(n*width/8)
//
// One byte records the bit width of the largest value in the window; every
// value then takes exactly that many bits. Effective when a window's values
// share a magnitude, degenerate when a single outlier forces a wide width.
//
// VarByte - stream variable-byte (StreamVByte):
//
//	c := codec.NewVarByteCodec()
//	blob, _ := c.Encode(vals, 0, len(vals))  // 1-4 bytes per value + 2 bits control
//
// Per-value byte lengths with the 2-bit length codes gathered into leading
// control bytes, which keeps decoding branch-free four values at a time.
// The default choice for both planes.
//
// EliasFano - quasi-succinct ascending sequences:
//
//	c := codec.NewEliasFanoCodec()
//	blob, _ := c.Encode(ascending, 0, len(ascending))
//
// Splits each value into low bits stored verbatim and a high part stored in
// a unary bitvector, approaching the information-theoretic minimum of
// 2 + log2(universe/n) bits per element. Encode rejects windows that are not
// strictly ascending, so it only suits index lists.
//
// Compressed - byte-level compression over any inner codec:
//
//	inner := codec.NewPackedCodec()
//	zstd, _ := compress.GetCodec(compress.TypeZstd)
//	c, _ := codec.NewCompressedCodec(inner, zstd)
//
// Runs the inner codec, then a compress.Codec over its blob. Worthwhile for
// long rows with repetitive structure; for short rows the compression header
// usually costs more than it saves.
//
// # Gap Transform Interplay
//
// Index lists are strictly ascending, and most codecs shrink them further
// after a gap transform (see internal/delta) replaces each element with its
// distance from the predecessor. Integrated() tells the caller whether to
// apply it:
//
//   - Integrated() == false: feed gap-transformed index lists (Raw, Packed,
//     VarByte, and Compressed over any of them)
//   - Integrated() == true: feed the original ascending list (EliasFano,
//     which encodes the ascent itself)
//
// Rating lists are never gap-transformed; they are not ascending.
//
// # Choosing a Codec
//
// For index lists:
//   - Dense rows (small gaps): VarByte, one byte per element
//   - Very dense or clustered rows: EliasFano approaches 2 bits per element
//   - Uniform gap magnitudes: Packed
//
// For rating lists:
//   - Few distinct values (1-5 star scale): Packed, 3 bits per rating
//   - Mixed scales: VarByte
//
// The stats package measures the actual trade-off per dataset; prefer a
// measurement over a guess.
//
// # Kind Names
//
// The Kind enum names the built-in window codecs for configuration, demos,
// and stats tables:
//
//	c, err := codec.New(codec.KindEliasFano)
//
// CompressedCodec has no Kind: it is assembled from parts via
// NewCompressedCodec.
package codec
