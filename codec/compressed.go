package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/prefpack/compress"
	"github.com/arloliu/prefpack/errs"
)

// CompressedCodec decorates an inner window codec with byte-level
// compression. The inner codec produces its blob as usual, the compressor
// shrinks it, and decode reverses both stages.
//
// Blob layout:
//   - Header (4 bytes): uncompressed inner blob length, little-endian
//   - Compressed inner blob
//
// The header lets decode verify the decompressed size before handing the
// inner blob on, so a corrupted payload fails here instead of surfacing as
// a confusing inner codec error.
type CompressedCodec struct {
	inner Codec
	comp  compress.Codec
}

var _ Codec = CompressedCodec{}

// NewCompressedCodec pairs an inner codec with a byte-level compressor.
// Returns ErrNilCodec if either stage is missing.
func NewCompressedCodec(inner Codec, comp compress.Codec) (CompressedCodec, error) {
	if inner == nil {
		return CompressedCodec{}, fmt.Errorf("%w: compressed codec needs an inner codec", errs.ErrNilCodec)
	}
	if comp == nil {
		return CompressedCodec{}, fmt.Errorf("%w: compressed codec needs a compressor", errs.ErrNilCodec)
	}

	return CompressedCodec{inner: inner, comp: comp}, nil
}

// Encode runs the inner codec over values[offset : offset+count] and
// compresses the result.
func (c CompressedCodec) Encode(values []uint32, offset, count int) ([]byte, error) {
	if err := checkWindow(len(values), offset, count); err != nil {
		return nil, err
	}

	if count == 0 {
		return []byte{}, nil
	}

	innerBlob, err := c.inner.Encode(values, offset, count)
	if err != nil {
		return nil, err
	}
	if len(innerBlob) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: inner blob of %d bytes exceeds the 4-byte length header",
			errs.ErrInvalidCount, len(innerBlob))
	}

	compressed, err := c.comp.Compress(innerBlob)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 4+len(compressed))
	binary.LittleEndian.PutUint32(blob, uint32(len(innerBlob)))
	copy(blob[4:], compressed)

	return blob, nil
}

// Decode decompresses the payload, checks it against the length header, and
// hands the inner blob to the inner codec.
func (c CompressedCodec) Decode(data []byte, dst []uint32, offset, count int) error {
	if err := checkWindow(len(dst), offset, count); err != nil {
		return err
	}

	if count == 0 {
		if len(data) != 0 {
			return fmt.Errorf("%w: compressed blob has %d trailing bytes for empty window",
				errs.ErrCorruptedBlob, len(data))
		}

		return nil
	}

	if len(data) < 4 {
		return fmt.Errorf("%w: compressed blob is %d bytes, shorter than its 4-byte header",
			errs.ErrCorruptedBlob, len(data))
	}

	innerLen := binary.LittleEndian.Uint32(data)
	innerBlob, err := c.comp.Decompress(data[4:])
	if err != nil {
		return fmt.Errorf("%w: decompressing inner blob: %v", errs.ErrCorruptedBlob, err)
	}
	if uint64(len(innerBlob)) != uint64(innerLen) {
		return fmt.Errorf("%w: inner blob is %d bytes, header says %d",
			errs.ErrCorruptedBlob, len(innerBlob), innerLen)
	}

	return c.inner.Decode(innerBlob, dst, offset, count)
}

// Integrated delegates to the inner codec: compression neither requires nor
// removes the gap transform.
func (c CompressedCodec) Integrated() bool {
	return c.inner.Integrated()
}
