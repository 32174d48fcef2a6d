package delta

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint32
		offset   int
		count    int
		expected []uint32
	}{
		{
			name:     "typical row",
			input:    []uint32{2, 5, 9},
			offset:   0,
			count:    3,
			expected: []uint32{2, 2, 3},
		},
		{
			name:     "consecutive indices collapse to zeros",
			input:    []uint32{0, 1, 2, 3, 4},
			offset:   0,
			count:    5,
			expected: []uint32{0, 0, 0, 0, 0},
		},
		{
			name:     "single element",
			input:    []uint32{7},
			offset:   0,
			count:    1,
			expected: []uint32{7},
		},
		{
			name:     "empty window",
			input:    []uint32{1, 2, 3},
			offset:   1,
			count:    0,
			expected: []uint32{1, 2, 3},
		},
		{
			name:     "starts at zero",
			input:    []uint32{0, 10, 11},
			offset:   0,
			count:    3,
			expected: []uint32{0, 9, 0},
		},
		{
			name:     "sub-window leaves surroundings untouched",
			input:    []uint32{100, 2, 5, 9, 200},
			offset:   1,
			count:    3,
			expected: []uint32{100, 2, 2, 3, 200},
		},
		{
			name:     "large values",
			input:    []uint32{1 << 30, 1<<30 + 1, 1 << 31},
			offset:   0,
			count:    3,
			expected: []uint32{1 << 30, 0, 1<<30 - 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := slices.Clone(tt.input)
			Encode(vals, tt.offset, tt.count)
			require.Equal(t, tt.expected, vals)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint32
		offset   int
		count    int
		expected []uint32
	}{
		{
			name:     "typical row",
			input:    []uint32{2, 2, 3},
			offset:   0,
			count:    3,
			expected: []uint32{2, 5, 9},
		},
		{
			name:     "all zeros expand to consecutive",
			input:    []uint32{0, 0, 0, 0, 0},
			offset:   0,
			count:    5,
			expected: []uint32{0, 1, 2, 3, 4},
		},
		{
			name:     "single element",
			input:    []uint32{7},
			offset:   0,
			count:    1,
			expected: []uint32{7},
		},
		{
			name:     "empty window",
			input:    []uint32{4, 5},
			offset:   0,
			count:    0,
			expected: []uint32{4, 5},
		},
		{
			name:     "sub-window leaves surroundings untouched",
			input:    []uint32{100, 2, 2, 3, 200},
			offset:   1,
			count:    3,
			expected: []uint32{100, 2, 5, 9, 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := slices.Clone(tt.input)
			Decode(vals, tt.offset, tt.count)
			require.Equal(t, tt.expected, vals)
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{1, 2, 10, 100, 10000} {
		// Build a strictly ascending window with random gaps
		vals := make([]uint32, size)
		cur := uint32(rng.Intn(100))
		for i := range vals {
			vals[i] = cur
			cur += 1 + uint32(rng.Intn(1000))
		}
		original := slices.Clone(vals)

		Encode(vals, 0, size)
		if size > 1 {
			require.NotEqual(t, original, vals, "transform should change multi-element windows")
		}

		Decode(vals, 0, size)
		require.Equal(t, original, vals, "round trip must restore the original window (size %d)", size)
	}
}

func TestEncodeDecode_SubWindowRoundTrip(t *testing.T) {
	vals := []uint32{9, 9, 0, 3, 7, 20, 9, 9}
	original := slices.Clone(vals)

	Encode(vals, 2, 4)
	Decode(vals, 2, 4)
	require.Equal(t, original, vals)
}

func TestEncode_TransformedValuesStayNonNegative(t *testing.T) {
	// The minimum gap in a strictly ascending window is one, so every
	// transformed element fits in uint32 without wrapping.
	vals := []uint32{5, 6, 7, 100}
	Encode(vals, 0, 4)
	require.Equal(t, []uint32{5, 0, 0, 92}, vals)
}

func BenchmarkEncode(b *testing.B) {
	vals := make([]uint32, 10000)
	for i := range vals {
		vals[i] = uint32(i * 3)
	}

	b.ReportAllocs()
	for b.Loop() {
		work := slices.Clone(vals)
		Encode(work, 0, len(work))
	}
}

func BenchmarkDecode(b *testing.B) {
	vals := make([]uint32, 10000)
	for i := range vals {
		vals[i] = uint32(i * 2)
	}
	Encode(vals, 0, len(vals))

	b.ReportAllocs()
	for b.Loop() {
		work := slices.Clone(vals)
		Decode(work, 0, len(work))
	}
}
