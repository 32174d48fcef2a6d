package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/prefpack/endian"
	"github.com/arloliu/prefpack/errs"
)

func TestRawCodec_Layout(t *testing.T) {
	values := []uint32{1, 0x01020304}

	t.Run("little endian", func(t *testing.T) {
		c := NewRawCodec(endian.GetLittleEndianEngine())
		blob, err := c.Encode(values, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x04, 0x03, 0x02, 0x01}, blob)
	})

	t.Run("big endian", func(t *testing.T) {
		c := NewRawCodec(endian.GetBigEndianEngine())
		blob, err := c.Encode(values, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01, 0x01, 0x02, 0x03, 0x04}, blob)
	})
}

func TestRawCodec_DecodeOffsetBlob(t *testing.T) {
	// Shift the blob base by one byte so word-aligned and unaligned decode
	// paths both produce the same values.
	c := NewRawCodec(endian.GetLittleEndianEngine())

	values := ascendingValues(64, 100, 11)
	blob, err := c.Encode(values, 0, len(values))
	require.NoError(t, err)

	shifted := make([]byte, len(blob)+1)
	copy(shifted[1:], blob)

	got := make([]uint32, len(values))
	require.NoError(t, c.Decode(shifted[1:], got, 0, len(values)))
	assert.Equal(t, values, got)
}

func TestRawCodec_Corruption(t *testing.T) {
	c := NewRawCodec(endian.GetLittleEndianEngine())

	tests := []struct {
		name  string
		data  []byte
		count int
	}{
		{"truncated word", []byte{0x01, 0x00, 0x00}, 1},
		{"missing value", make([]byte, 4), 2},
		{"trailing bytes", make([]byte, 9), 2},
		{"extra value", make([]byte, 12), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint32, tt.count)
			err := c.Decode(tt.data, dst, 0, tt.count)
			require.ErrorIs(t, err, errs.ErrCorruptedBlob)
		})
	}
}
