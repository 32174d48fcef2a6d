package codec

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/prefpack/compress"
	"github.com/arloliu/prefpack/endian"
	"github.com/arloliu/prefpack/errs"
)

// ============================================================================
// Kind
// ============================================================================

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRaw, "Raw"},
		{KindPacked, "Packed"},
		{KindVarByte, "VarByte"},
		{KindEliasFano, "EliasFano"},
		{Kind(0), "Unknown"},
		{Kind(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want Codec
	}{
		{"raw", KindRaw, RawCodec{}},
		{"packed", KindPacked, PackedCodec{}},
		{"varbyte", KindVarByte, VarByteCodec{}},
		{"eliasfano", KindEliasFano, EliasFanoCodec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.kind)
			require.NoError(t, err)
			require.IsType(t, tt.want, c)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		c, err := New(Kind(0x99))
		require.Error(t, err)
		require.Nil(t, c)
	})
}

func TestCodecs_Integrated(t *testing.T) {
	assert.False(t, NewRawCodec(endian.GetLittleEndianEngine()).Integrated())
	assert.False(t, NewPackedCodec().Integrated())
	assert.False(t, NewVarByteCodec().Integrated())
	assert.True(t, NewEliasFanoCodec().Integrated())

	// The compression decorator passes the flag through unchanged.
	comp, err := compress.GetCodec(compress.TypeS2)
	require.NoError(t, err)

	overVarByte, err := NewCompressedCodec(NewVarByteCodec(), comp)
	require.NoError(t, err)
	assert.False(t, overVarByte.Integrated())

	overEliasFano, err := NewCompressedCodec(NewEliasFanoCodec(), comp)
	require.NoError(t, err)
	assert.True(t, overEliasFano.Integrated())
}

// ============================================================================
// Shared Test Helpers
// ============================================================================

// allWindowCodecs returns every built-in codec plus a compressed variant per
// compressor, keyed by display name.
func allWindowCodecs(t *testing.T) map[string]Codec {
	t.Helper()

	codecs := map[string]Codec{
		"Raw":       NewRawCodec(endian.GetLittleEndianEngine()),
		"RawBE":     NewRawCodec(endian.GetBigEndianEngine()),
		"Packed":    NewPackedCodec(),
		"VarByte":   NewVarByteCodec(),
		"EliasFano": NewEliasFanoCodec(),
	}

	for _, ct := range []compress.Type{compress.TypeNone, compress.TypeZstd, compress.TypeS2, compress.TypeLZ4} {
		comp, err := compress.GetCodec(ct)
		require.NoError(t, err)

		cc, err := NewCompressedCodec(NewVarByteCodec(), comp)
		require.NoError(t, err)
		codecs["Compressed"+ct.String()] = cc
	}

	return codecs
}

// ascendingValues generates n strictly ascending values with random gaps in
// [1, maxGap].
func ascendingValues(n, maxGap int, seed int64) []uint32 {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]uint32, n)
	cur := uint32(0)
	for i := range vals {
		cur += uint32(rng.Intn(maxGap)) + 1
		vals[i] = cur
	}

	return vals
}

// ratingValues generates n values in [1, scale], the shape of a rating run.
func ratingValues(n, scale int, seed int64) []uint32 {
	rng := rand.New(rand.NewSource(seed))
	vals := make([]uint32, n)
	for i := range vals {
		vals[i] = uint32(rng.Intn(scale)) + 1
	}

	return vals
}

func roundTrip(t *testing.T, c Codec, values []uint32) {
	t.Helper()

	blob, err := c.Encode(values, 0, len(values))
	require.NoError(t, err)

	got := make([]uint32, len(values))
	require.NoError(t, c.Decode(blob, got, 0, len(values)))
	require.Equal(t, values, got)
}

// ============================================================================
// Round Trips
// ============================================================================

func TestCodecs_RoundTripAscending(t *testing.T) {
	tests := []struct {
		name   string
		values []uint32
	}{
		{"single zero", []uint32{0}},
		{"single max", []uint32{math.MaxUint32}},
		{"worked example", []uint32{2, 5, 9}},
		{"dense run", ascendingValues(100, 1, 7)},
		{"small gaps", ascendingValues(1000, 4, 1)},
		{"sparse", ascendingValues(500, 1_000_000, 2)},
		{"long", ascendingValues(10000, 100, 3)},
	}

	for name, c := range allWindowCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					roundTrip(t, c, tt.values)
				})
			}
		})
	}
}

func TestCodecs_RoundTripUnordered(t *testing.T) {
	tests := []struct {
		name   string
		values []uint32
	}{
		{"descending", []uint32{9, 5, 2}},
		{"constant", []uint32{3, 3, 3, 3, 3, 3, 3, 3}},
		{"all zeros", make([]uint32, 50)},
		{"five-star scale", ratingValues(1000, 5, 4)},
		{"mixed magnitudes", []uint32{0, math.MaxUint32, 1, 65536, 255, 256, 42}},
	}

	for name, c := range allWindowCodecs(t) {
		if c.Integrated() {
			continue
		}

		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					roundTrip(t, c, tt.values)
				})
			}
		})
	}
}

func TestCodecs_SubWindow(t *testing.T) {
	// Rows share one flat plane, so codecs must read and write windows
	// without touching the neighboring rows.
	const sentinel = uint32(0xDEADBEEF)

	src := ascendingValues(40, 10, 9)

	for name, c := range allWindowCodecs(t) {
		t.Run(name, func(t *testing.T) {
			blob, err := c.Encode(src, 8, 16)
			require.NoError(t, err)

			dst := make([]uint32, 30)
			for i := range dst {
				dst[i] = sentinel
			}

			require.NoError(t, c.Decode(blob, dst, 5, 16))

			require.Equal(t, src[8:24], dst[5:21])
			for _, i := range []int{0, 4, 21, 29} {
				assert.Equal(t, sentinel, dst[i], "neighbor slot %d overwritten", i)
			}
		})
	}
}

func TestCodecs_EmptyWindow(t *testing.T) {
	for name, c := range allWindowCodecs(t) {
		t.Run(name, func(t *testing.T) {
			blob, err := c.Encode(nil, 0, 0)
			require.NoError(t, err)
			require.Empty(t, blob)

			require.NoError(t, c.Decode(blob, nil, 0, 0))

			err = c.Decode([]byte{0x01, 0x02}, nil, 0, 0)
			require.ErrorIs(t, err, errs.ErrCorruptedBlob)
		})
	}
}

// ============================================================================
// Window Validation
// ============================================================================

func TestCodecs_WindowValidation(t *testing.T) {
	values := ascendingValues(10, 3, 5)

	tests := []struct {
		name    string
		offset  int
		count   int
		wantErr error
	}{
		{"negative offset", -1, 2, errs.ErrInvalidOffset},
		{"negative count", 0, -1, errs.ErrInvalidCount},
		{"window past end", 4, 7, errs.ErrInvalidCount},
		{"offset past end", 11, 0, errs.ErrInvalidCount},
	}

	for name, c := range allWindowCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					_, err := c.Encode(values, tt.offset, tt.count)
					require.ErrorIs(t, err, tt.wantErr)

					dst := make([]uint32, 10)
					err = c.Decode([]byte{}, dst, tt.offset, tt.count)
					require.ErrorIs(t, err, tt.wantErr)
				})
			}
		})
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestCodecs_ConcurrentUse(t *testing.T) {
	// VarByte stages through a shared buffer pool and the compressed codecs
	// share pooled compressors, so hammer one instance from many goroutines.
	comp, err := compress.GetCodec(compress.TypeZstd)
	require.NoError(t, err)

	compressed, err := NewCompressedCodec(NewPackedCodec(), comp)
	require.NoError(t, err)

	codecs := map[string]Codec{
		"VarByte":        NewVarByteCodec(),
		"CompressedZstd": compressed,
	}

	const (
		goroutines = 10
		iterations = 100
	)

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for g := range goroutines {
				wg.Add(1)
				go func(seed int64) {
					defer wg.Done()

					values := ascendingValues(200, 50, seed)
					for range iterations {
						blob, err := c.Encode(values, 0, len(values))
						if !assert.NoError(t, err) {
							return
						}

						got := make([]uint32, len(values))
						if !assert.NoError(t, c.Decode(blob, got, 0, len(values))) {
							return
						}
						if !assert.Equal(t, values, got) {
							return
						}
					}
				}(int64(g))
			}
			wg.Wait()
		})
	}
}
