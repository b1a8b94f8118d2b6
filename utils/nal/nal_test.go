package nal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		b          []byte
		lengthSize int
		want       uint32
		err        error
	}{
		{"four_bytes", []byte{0, 0, 0, 5, 0x67}, 4, 5, nil},
		{"two_bytes", []byte{0x01, 0x02}, 2, 0x0102, nil},
		{"one_byte", []byte{0x09}, 1, 9, nil},
		{"three_bytes", []byte{0x00, 0x01, 0x00}, 3, 256, nil},
		{"short", []byte{0, 0, 0}, 4, 0, ErrShortPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadLength(tt.b, tt.lengthSize)
			require.ErrorIs(t, err, tt.err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplitAVCC(t *testing.T) {
	t.Parallel()

	t.Run("multiple_units", func(t *testing.T) {
		t.Parallel()
		b := []byte{0, 2, 0x09, 0xf0, 0, 5, 0x65, 0x88, 0x84}
		nalus, err := SplitAVCC(b, 2)
		require.ErrorIs(t, err, ErrShortPayload)
		require.Equal(t, [][]byte{{0x09, 0xf0}}, nalus)

		b = []byte{0, 2, 0x09, 0xf0, 0, 0, 0, 3, 0x65, 0x88, 0x84}
		nalus, err = SplitAVCC(b, 2)
		require.NoError(t, err)
		require.Equal(t, [][]byte{{0x09, 0xf0}, {}, {0x65, 0x88, 0x84}}, nalus)

		b = []byte{0, 2, 0x09, 0xf0, 0, 3, 0x65, 0x88, 0x84}
		nalus, err = SplitAVCC(b, 2)
		require.NoError(t, err)
		require.Equal(t, [][]byte{{0x09, 0xf0}, {0x65, 0x88, 0x84}}, nalus)
	})

	t.Run("zero_length_unit", func(t *testing.T) {
		t.Parallel()
		nalus, err := SplitAVCC([]byte{0, 0, 0, 0}, 4)
		require.NoError(t, err)
		require.Equal(t, [][]byte{{}}, nalus)
	})

	t.Run("dangling_prefix", func(t *testing.T) {
		t.Parallel()
		nalus, err := SplitAVCC([]byte{0, 0, 0, 1, 0x09, 0x00}, 4)
		require.ErrorIs(t, err, ErrShortPrefix)
		require.Equal(t, [][]byte{{0x09}}, nalus)
	})
}

func TestHasStartCode(t *testing.T) {
	t.Parallel()

	require.False(t, HasStartCode([]byte{0x67, 0x00, 0x00, 0x03, 0x01}))
	require.True(t, HasStartCode([]byte{0x65, 0x00, 0x00, 0x01, 0x41}))
	require.True(t, HasStartCode([]byte{0x65, 0x00, 0x00, 0x00, 0x01}))
	require.False(t, HasStartCode([]byte{0x00, 0x00}))
	require.False(t, HasStartCode(nil))
}
