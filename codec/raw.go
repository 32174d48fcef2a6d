package codec

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/prefpack/endian"
	"github.com/arloliu/prefpack/errs"
)

// RawCodec stores each integer as a fixed 32-bit word in the byte order of
// the configured endian engine.
//
// Raw encoding provides:
//   - Fixed 4 bytes per integer storage
//   - Fast encoding/decoding with no computational overhead
//   - Predictable blob size (4 × count bytes)
//
// It is the baseline the other codecs are measured against, and the right
// choice when ratios do not matter or the data is incompressible.
type RawCodec struct {
	engine endian.EndianEngine
}

var _ Codec = RawCodec{}

// NewRawCodec creates a raw fixed-width codec using the specified endian
// engine. The store format uses little-endian throughout; pass
// endian.GetLittleEndianEngine() unless interoperating with foreign data.
func NewRawCodec(engine endian.EndianEngine) RawCodec {
	return RawCodec{engine: engine}
}

// Encode stores values[offset : offset+count] as consecutive 4-byte words.
//
// Returns:
//   - []byte: Encoded blob of exactly 4 × count bytes
//   - error: Window validation error
func (c RawCodec) Encode(values []uint32, offset, count int) ([]byte, error) {
	if err := checkWindow(len(values), offset, count); err != nil {
		return nil, err
	}

	blob := make([]byte, count*4)
	for i := range count {
		c.engine.PutUint32(blob[i*4:], values[offset+i])
	}

	return blob, nil
}

// Decode reads count consecutive 4-byte words into dst[offset : offset+count].
//
// The blob length must be exactly 4 × count bytes; anything else is reported
// as corruption.
func (c RawCodec) Decode(data []byte, dst []uint32, offset, count int) error {
	if err := checkWindow(len(dst), offset, count); err != nil {
		return err
	}

	if len(data) != count*4 {
		return fmt.Errorf("%w: raw blob is %d bytes, want %d for %d values",
			errs.ErrCorruptedBlob, len(data), count*4, count)
	}

	if count == 0 {
		return nil
	}

	// Zero-copy fast path: reinterpret the blob as a uint32 slice when the
	// engine matches the host byte order and the blob base is word aligned.
	if endian.CompareNativeEndian(c.engine) && uintptr(unsafe.Pointer(&data[0]))%4 == 0 {
		words := unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), count)
		copy(dst[offset:offset+count], words)

		return nil
	}

	for i := range count {
		dst[offset+i] = c.engine.Uint32(data[i*4:])
	}

	return nil
}

// Integrated reports false: raw blobs carry gap-transformed index lists.
func (c RawCodec) Integrated() bool {
	return false
}
