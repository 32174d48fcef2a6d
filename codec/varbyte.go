package codec

import (
	"fmt"

	"github.com/mhr3/streamvbyte"

	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/pool"
)

// VarByteCodec encodes windows with stream variable-byte (StreamVByte)
// encoding: control bytes first (one per four values, each 2-bit code giving
// a value's byte length minus one), then the variable-length value bytes.
//
// Compression characteristics:
//   - Values 0-255: 1 byte per value (typical for gap-transformed rows)
//   - Values up to 65535: 2 bytes per value
//   - Larger values: 3-4 bytes per value
//   - Control overhead: 2 bits per value
//
// This is the default codec for both index and value planes: fast to decode,
// and gap-transformed preference rows are dominated by small values.
type VarByteCodec struct{}

var _ Codec = VarByteCodec{}

// NewVarByteCodec creates a stream variable-byte codec.
func NewVarByteCodec() VarByteCodec {
	return VarByteCodec{}
}

// Encode compresses values[offset : offset+count] into a StreamVByte blob.
//
// Encoding stages through a pooled buffer sized to the worst case and
// copies the exact-length result out, so returned blobs never pin pool
// memory.
func (c VarByteCodec) Encode(values []uint32, offset, count int) ([]byte, error) {
	if err := checkWindow(len(values), offset, count); err != nil {
		return nil, err
	}

	if count == 0 {
		return []byte{}, nil
	}

	bound := streamvbyte.MaxEncodedLen(count)
	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)
	bb.Grow(bound)

	encoded := streamvbyte.EncodeUint32(values[offset:offset+count], &streamvbyte.EncodeOptions[uint32]{
		Buffer: bb.B[:bound],
	})

	blob := make([]byte, len(encoded))
	copy(blob, encoded)

	return blob, nil
}

// Decode expands a StreamVByte blob into dst[offset : offset+count].
//
// The exact stream length is computed from the control bytes and compared
// against the blob before any value is decoded, so truncated and padded
// blobs fail instead of producing a wrong number of elements.
func (c VarByteCodec) Decode(data []byte, dst []uint32, offset, count int) error {
	if err := checkWindow(len(dst), offset, count); err != nil {
		return err
	}

	if count == 0 {
		if len(data) != 0 {
			return fmt.Errorf("%w: varbyte blob has %d trailing bytes for empty window",
				errs.ErrCorruptedBlob, len(data))
		}

		return nil
	}

	expected, err := varByteStreamLen(data, count)
	if err != nil {
		return err
	}
	if len(data) != expected {
		return fmt.Errorf("%w: varbyte blob is %d bytes, want %d for %d values",
			errs.ErrCorruptedBlob, len(data), expected, count)
	}

	streamvbyte.DecodeUint32(data, count, &streamvbyte.DecodeOptions[uint32]{
		Buffer: dst[offset : offset+count],
	})

	return nil
}

// Integrated reports false: variable-byte expects gap-transformed index
// lists.
func (c VarByteCodec) Integrated() bool {
	return false
}

// varByteStreamLen computes the exact encoded stream length for count values
// from the control bytes at the head of data.
func varByteStreamLen(data []byte, count int) (int, error) {
	numCtrl := (count + 3) >> 2
	if len(data) < numCtrl {
		return 0, fmt.Errorf("%w: varbyte blob is %d bytes, shorter than its %d control bytes",
			errs.ErrCorruptedBlob, len(data), numCtrl)
	}

	dataSize := 0
	fullBlocks := count >> 2
	for i := range fullBlocks {
		ctrl := data[i]
		dataSize += int(ctrl&0x03) + int((ctrl>>2)&0x03) + int((ctrl>>4)&0x03) + int(ctrl>>6) + 4
	}

	// Final partial block: only the occupied lanes carry data bytes.
	if rem := count & 0x03; rem > 0 {
		ctrl := data[fullBlocks]
		for lane := range rem {
			dataSize += int((ctrl>>(2*lane))&0x03) + 1
		}
	}

	return numCtrl + dataSize, nil
}
