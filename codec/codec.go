package codec

import (
	"fmt"

	"github.com/arloliu/prefpack/endian"
	"github.com/arloliu/prefpack/errs"
)

// Codec encodes and decodes windows of unsigned 32-bit integer sequences.
//
// A codec is the unit of pluggability for the preference store: one instance
// encodes counterpart-index lists, another encodes rating values, and the
// store treats the produced blobs as opaque bytes. Implementations must be
// stateless; a single instance is shared across build workers and concurrent
// readers.
type Codec interface {
	// Encode compresses exactly values[offset : offset+count] and returns
	// the encoded blob. The input slice is not modified.
	//
	// Window arguments are validated: a negative offset fails with
	// errs.ErrInvalidOffset, a negative count or a window extending past
	// len(values) fails with errs.ErrInvalidCount.
	Encode(values []uint32, offset, count int) ([]byte, error)

	// Decode writes exactly count integers into dst[offset : offset+count]
	// from a blob produced by the matching Encode.
	//
	// Decode fails with an error wrapping errs.ErrCorruptedBlob when the
	// blob cannot produce exactly count elements: short data, trailing
	// garbage, and malformed headers all count as corruption. There is no
	// silent truncation or padding.
	Decode(data []byte, dst []uint32, offset, count int) error

	// Integrated reports whether the codec consumes raw strictly ascending
	// sequences itself. The store applies the gap transform to index lists
	// only when Integrated returns false; an integrated codec must receive
	// the untransformed ascending input.
	Integrated() bool
}

// Kind identifies a built-in codec.
type Kind uint8

const (
	KindRaw       Kind = 0x1 // KindRaw is the fixed-width 32-bit baseline.
	KindPacked    Kind = 0x2 // KindPacked is fixed-width bit packing.
	KindVarByte   Kind = 0x3 // KindVarByte is stream variable-byte encoding.
	KindEliasFano Kind = 0x4 // KindEliasFano is quasi-succinct monotone encoding.
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "Raw"
	case KindPacked:
		return "Packed"
	case KindVarByte:
		return "VarByte"
	case KindEliasFano:
		return "EliasFano"
	default:
		return "Unknown"
	}
}

// New creates a built-in codec for the given kind. All built-in codecs use
// little-endian byte order.
func New(kind Kind) (Codec, error) {
	switch kind {
	case KindRaw:
		return NewRawCodec(endian.GetLittleEndianEngine()), nil
	case KindPacked:
		return NewPackedCodec(), nil
	case KindVarByte:
		return NewVarByteCodec(), nil
	case KindEliasFano:
		return NewEliasFanoCodec(), nil
	default:
		return nil, fmt.Errorf("unknown codec kind: %s", kind)
	}
}

// checkWindow validates an offset/count window against a slice length.
func checkWindow(sliceLen, offset, count int) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", errs.ErrInvalidOffset, offset)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", errs.ErrInvalidCount, count)
	}
	if offset+count > sliceLen {
		return fmt.Errorf("%w: window [%d, %d) exceeds length %d", errs.ErrInvalidCount, offset, offset+count, sliceLen)
	}

	return nil
}
