package codec

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/arloliu/prefpack/errs"
)

// EliasFanoCodec encodes strictly ascending windows as a quasi-succinct
// Elias-Fano sequence. Each value splits into l low bits stored verbatim and
// a high part stored as a unary-coded bitvector.
//
// Blob layout:
//   - Header (4 bytes): last element of the window, little-endian
//   - Low bits: count*l bits, LSB-first within bytes
//   - High bits: unary bitvector with bit (value>>l)+i set for element i
//
// The split width l derives from the header and the element count, so it is
// not stored. Space approaches the information-theoretic lower bound of
// 2 + log2(universe/count) bits per element.
//
// The codec is integrated: it requires the original ascending index list and
// must not be fed gap-transformed input. Feeding it a rating window fails
// with ErrNotAscending unless the ratings happen to ascend strictly.
type EliasFanoCodec struct{}

var _ Codec = EliasFanoCodec{}

// NewEliasFanoCodec creates an Elias-Fano codec for ascending index lists.
func NewEliasFanoCodec() EliasFanoCodec {
	return EliasFanoCodec{}
}

// Encode compresses the strictly ascending values[offset : offset+count]
// into an Elias-Fano blob. Returns ErrNotAscending if any element is not
// strictly greater than its predecessor.
func (c EliasFanoCodec) Encode(values []uint32, offset, count int) ([]byte, error) {
	if err := checkWindow(len(values), offset, count); err != nil {
		return nil, err
	}

	if count == 0 {
		return []byte{}, nil
	}

	window := values[offset : offset+count]
	for i := 1; i < count; i++ {
		if window[i] <= window[i-1] {
			return nil, fmt.Errorf("%w: element %d (%d) not greater than element %d (%d)",
				errs.ErrNotAscending, i, window[i], i-1, window[i-1])
		}
	}

	last := window[count-1]
	l, lowBytes, highBytes := eliasFanoLayout(last, count)

	blob := make([]byte, 4+lowBytes+highBytes)
	binary.LittleEndian.PutUint32(blob, last)

	if l > 0 {
		lowArr := blob[4 : 4+lowBytes]
		mask := uint64(1)<<l - 1

		var acc uint64
		accBits := 0
		pos := 0
		for _, v := range window {
			acc |= (uint64(v) & mask) << accBits
			accBits += l
			for accBits >= 8 {
				lowArr[pos] = byte(acc)
				acc >>= 8
				accBits -= 8
				pos++
			}
		}
		if accBits > 0 {
			lowArr[pos] = byte(acc)
		}
	}

	highArr := blob[4+lowBytes:]
	for i, v := range window {
		bit := (uint64(v) >> l) + uint64(i)
		highArr[bit>>3] |= 1 << (bit & 7)
	}

	return blob, nil
}

// Decode expands an Elias-Fano blob into dst[offset : offset+count].
//
// The layout is fully determined by the header and count, so any size
// mismatch, impossible upper bound, or wrong set-bit population is reported
// as a corrupted blob.
func (c EliasFanoCodec) Decode(data []byte, dst []uint32, offset, count int) error {
	if err := checkWindow(len(dst), offset, count); err != nil {
		return err
	}

	if count == 0 {
		if len(data) != 0 {
			return fmt.Errorf("%w: elias-fano blob has %d trailing bytes for empty window",
				errs.ErrCorruptedBlob, len(data))
		}

		return nil
	}

	if len(data) < 4 {
		return fmt.Errorf("%w: elias-fano blob is %d bytes, shorter than its 4-byte header",
			errs.ErrCorruptedBlob, len(data))
	}

	last := binary.LittleEndian.Uint32(data)
	if uint64(last)+1 < uint64(count) {
		return fmt.Errorf("%w: elias-fano upper bound %d cannot hold %d ascending values",
			errs.ErrCorruptedBlob, last, count)
	}

	l, lowBytes, highBytes := eliasFanoLayout(last, count)
	expected := 4 + lowBytes + highBytes
	if len(data) != expected {
		return fmt.Errorf("%w: elias-fano blob is %d bytes, want %d for %d values",
			errs.ErrCorruptedBlob, len(data), expected, count)
	}

	lowArr := data[4 : 4+lowBytes]
	highArr := data[4+lowBytes:]

	i := 0
	for byteIdx, b := range highArr {
		for b != 0 {
			tz := bits.TrailingZeros8(b)
			b &= b - 1

			if i >= count {
				return fmt.Errorf("%w: elias-fano high bitvector has more than %d set bits",
					errs.ErrCorruptedBlob, count)
			}

			pos := uint64(byteIdx)<<3 + uint64(tz)
			v := (pos - uint64(i)) << l
			if l > 0 {
				v |= readLowBits(lowArr, i*l, l)
			}
			dst[offset+i] = uint32(v)
			i++
		}
	}

	if i != count {
		return fmt.Errorf("%w: elias-fano high bitvector has %d set bits, want %d",
			errs.ErrCorruptedBlob, i, count)
	}

	return nil
}

// Integrated reports true: the codec consumes and reproduces the original
// ascending list, no gap transform applies.
func (c EliasFanoCodec) Integrated() bool {
	return true
}

// eliasFanoLayout derives the low-bit width and the byte sizes of both bit
// arrays from the last element and the element count.
func eliasFanoLayout(last uint32, count int) (l, lowBytes, highBytes int) {
	universe := uint64(last) + 1
	ratio := universe / uint64(count)
	if ratio >= 2 {
		l = bits.Len64(ratio) - 1
	}

	lowBytes = (count*l + 7) >> 3
	highBits := (uint64(last) >> l) + uint64(count)
	highBytes = int((highBits + 7) >> 3)

	return l, lowBytes, highBytes
}

// readLowBits extracts width bits starting at bit offset bitOff from an
// LSB-first packed array. Callers guarantee the read stays in bounds.
func readLowBits(lowArr []byte, bitOff, width int) uint64 {
	byteIdx := bitOff >> 3
	shift := bitOff & 7

	var acc uint64
	accBits := 0
	for accBits < shift+width {
		acc |= uint64(lowArr[byteIdx]) << accBits
		accBits += 8
		byteIdx++
	}

	return (acc >> shift) & (uint64(1)<<width - 1)
}
