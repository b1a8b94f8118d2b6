package pio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUintBE(t *testing.T) {
	t.Parallel()

	b := []byte{0x00, 0x00, 0x00, 0x05, 0x67}
	require.Equal(t, uint64(5), UintBE(b, 4))
	require.Equal(t, uint64(0), UintBE(b, 3))
	require.Equal(t, uint64(0x0567), UintBE(b[3:], 2))
	require.Equal(t, uint64(0x67), UintBE(b[4:], 1))
	require.Equal(t, uint64(U32BE(b)), UintBE(b, 4))
}

func TestPutUintBE(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 8; n++ {
		b := make([]byte, n)
		v := uint64(0x0102030405060708) >> (8 * (8 - n))
		PutUintBE(b, v, n)
		require.Equal(t, v, UintBE(b, n), "width %d", n)
	}

	b := make([]byte, 8)
	PutU64BE(b, 0x1122334455667788)
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}, b)
	require.Equal(t, uint64(0x1122334455667788), U64BE(b))
	require.Equal(t, uint32(0x223344), U24BE(b[1:]))
}
