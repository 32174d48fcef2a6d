package codec

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/prefpack/errs"
)

// PackedCodec stores a window at the fixed bit width of its largest element.
//
// Blob layout:
//   - 1 byte: bit width (0..32), the bit length of the window maximum
//   - ceil(count × width / 8) bytes: values packed least-significant-bit
//     first through a 64-bit accumulator, flushed little-endian
//
// All-zero windows (and empty windows) encode as the header byte alone.
// Gap-transformed index lists pack well here because the transform pulls
// every element down to its local gap.
type PackedCodec struct{}

var _ Codec = PackedCodec{}

// NewPackedCodec creates a fixed-width bit packing codec.
func NewPackedCodec() PackedCodec {
	return PackedCodec{}
}

// Encode packs values[offset : offset+count] at the width of the window
// maximum.
func (c PackedCodec) Encode(values []uint32, offset, count int) ([]byte, error) {
	if err := checkWindow(len(values), offset, count); err != nil {
		return nil, err
	}

	if count == 0 {
		return []byte{}, nil
	}

	width := 0
	for i := range count {
		if l := bits.Len32(values[offset+i]); l > width {
			width = l
		}
	}

	blob := make([]byte, 1, 1+(count*width+7)/8)
	blob[0] = byte(width)

	var acc uint64
	accBits := 0
	for i := range count {
		acc |= uint64(values[offset+i]) << accBits
		accBits += width
		for accBits >= 8 {
			blob = append(blob, byte(acc))
			acc >>= 8
			accBits -= 8
		}
	}
	if accBits > 0 {
		blob = append(blob, byte(acc))
	}

	return blob, nil
}

// Decode unpacks count values into dst[offset : offset+count].
//
// The blob must consist of exactly the header byte plus the packed payload
// for count values at the recorded width; a width above 32, a size mismatch,
// or nonzero padding bits in the final byte are reported as corruption.
func (c PackedCodec) Decode(data []byte, dst []uint32, offset, count int) error {
	if err := checkWindow(len(dst), offset, count); err != nil {
		return err
	}

	if count == 0 {
		if len(data) != 0 {
			return fmt.Errorf("%w: packed blob has %d trailing bytes for empty window",
				errs.ErrCorruptedBlob, len(data))
		}

		return nil
	}

	if len(data) < 1 {
		return fmt.Errorf("%w: packed blob missing width header", errs.ErrCorruptedBlob)
	}

	width := int(data[0])
	if width > 32 {
		return fmt.Errorf("%w: packed width %d exceeds 32", errs.ErrCorruptedBlob, width)
	}

	expected := 1 + (count*width+7)/8
	if len(data) != expected {
		return fmt.Errorf("%w: packed blob is %d bytes, want %d for %d values at width %d",
			errs.ErrCorruptedBlob, len(data), expected, count, width)
	}

	if width == 0 {
		for i := range count {
			dst[offset+i] = 0
		}

		return nil
	}

	mask := uint64(1)<<width - 1
	var acc uint64
	accBits := 0
	pos := 1
	for i := range count {
		for accBits < width {
			acc |= uint64(data[pos]) << accBits
			pos++
			accBits += 8
		}
		dst[offset+i] = uint32(acc & mask)
		acc >>= width
		accBits -= width
	}

	// Whatever remains in the accumulator is padding and must be zero.
	if acc != 0 {
		return fmt.Errorf("%w: packed blob has nonzero padding bits", errs.ErrCorruptedBlob)
	}

	return nil
}

// Integrated reports false: packing expects gap-transformed index lists.
func (c PackedCodec) Integrated() bool {
	return false
}
