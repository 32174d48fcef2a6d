package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/prefpack/compress"
	"github.com/arloliu/prefpack/endian"
	"github.com/arloliu/prefpack/errs"
)

func TestNewCompressedCodec_NilParts(t *testing.T) {
	comp, err := compress.GetCodec(compress.TypeS2)
	require.NoError(t, err)

	_, err = NewCompressedCodec(nil, comp)
	require.ErrorIs(t, err, errs.ErrNilCodec)

	_, err = NewCompressedCodec(NewVarByteCodec(), nil)
	require.ErrorIs(t, err, errs.ErrNilCodec)
}

func TestCompressedCodec_HeaderLayout(t *testing.T) {
	// With the pass-through compressor the blob is just the 4-byte inner
	// length plus the inner blob itself.
	comp, err := compress.GetCodec(compress.TypeNone)
	require.NoError(t, err)

	c, err := NewCompressedCodec(NewVarByteCodec(), comp)
	require.NoError(t, err)

	blob, err := c.Encode([]uint32{1}, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}, blob)
}

func TestCompressedCodec_AllCompressorsAllInners(t *testing.T) {
	inners := map[string]Codec{
		"Raw":       NewRawCodec(endian.GetLittleEndianEngine()),
		"Packed":    NewPackedCodec(),
		"VarByte":   NewVarByteCodec(),
		"EliasFano": NewEliasFanoCodec(),
	}

	values := ascendingValues(2000, 8, 31)

	for _, ct := range []compress.Type{compress.TypeNone, compress.TypeZstd, compress.TypeS2, compress.TypeLZ4} {
		comp, err := compress.GetCodec(ct)
		require.NoError(t, err)

		for name, inner := range inners {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				c, err := NewCompressedCodec(inner, comp)
				require.NoError(t, err)
				roundTrip(t, c, values)
			})
		}
	}
}

func TestCompressedCodec_IncompressibleInput(t *testing.T) {
	// Uniform random words leave nothing for the compressor; the blob may
	// grow, but the round trip must hold.
	rng := rand.New(rand.NewSource(99))
	values := make([]uint32, 1000)
	for i := range values {
		values[i] = rng.Uint32()
	}

	for _, ct := range []compress.Type{compress.TypeZstd, compress.TypeS2, compress.TypeLZ4} {
		comp, err := compress.GetCodec(ct)
		require.NoError(t, err)

		t.Run(ct.String(), func(t *testing.T) {
			c, err := NewCompressedCodec(NewRawCodec(endian.GetLittleEndianEngine()), comp)
			require.NoError(t, err)
			roundTrip(t, c, values)
		})
	}
}

func TestCompressedCodec_Corruption(t *testing.T) {
	noop, err := compress.GetCodec(compress.TypeNone)
	require.NoError(t, err)

	c, err := NewCompressedCodec(NewVarByteCodec(), noop)
	require.NoError(t, err)

	values := []uint32{10, 20, 30}
	blob, err := c.Encode(values, 0, 3)
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		dst := make([]uint32, 3)
		err := c.Decode([]byte{0x01, 0x02, 0x03}, dst, 0, 3)
		require.ErrorIs(t, err, errs.ErrCorruptedBlob)
	})

	t.Run("length header mismatch", func(t *testing.T) {
		tampered := append([]byte{}, blob...)
		tampered[0]++

		dst := make([]uint32, 3)
		err := c.Decode(tampered, dst, 0, 3)
		require.ErrorIs(t, err, errs.ErrCorruptedBlob)
	})

	t.Run("truncated payload", func(t *testing.T) {
		dst := make([]uint32, 3)
		err := c.Decode(blob[:len(blob)-1], dst, 0, 3)
		require.ErrorIs(t, err, errs.ErrCorruptedBlob)
	})

	t.Run("corrupted compressed frame", func(t *testing.T) {
		zstd, err := compress.GetCodec(compress.TypeZstd)
		require.NoError(t, err)

		zc, err := NewCompressedCodec(NewVarByteCodec(), zstd)
		require.NoError(t, err)

		zblob, err := zc.Encode(values, 0, 3)
		require.NoError(t, err)

		// Break the frame magic in the first payload byte.
		tampered := append([]byte{}, zblob...)
		tampered[4] ^= 0xFF

		dst := make([]uint32, 3)
		err = zc.Decode(tampered, dst, 0, 3)
		require.ErrorIs(t, err, errs.ErrCorruptedBlob)
	})
}
