package hexdump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSprint(t *testing.T) {
	t.Parallel()

	t.Run("header", func(t *testing.T) {
		t.Parallel()
		out := Sprint([]byte{0x00, 0x00, 0x00, 0x08, 'f', 'r', 'e', 'e'}, "    ")
		require.Equal(t, "    0000:: 00 00 00 08 66 72 65 65\n", out)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "0000::\n", Sprint(nil, ""))
	})

	t.Run("exact_row", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 16)
		out := Sprint(buf, "")
		require.Equal(t, "0000:: 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n", out)
	})

	t.Run("two_rows", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 17)
		buf[16] = 0xff
		out := Sprint(buf, "")
		require.Contains(t, out, "\n0010:: ff\n")
	})
}
