package h264

import (
	"testing"

	mch264 "github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/stretchr/testify/require"
	"github.com/ugparu/mp4inspect/utils"
)

func newExtractor(t *testing.T, lengthSize int) *NALExtractor {
	t.Helper()
	ex, err := NewNALExtractor(lengthSize)
	require.NoError(t, err)
	return ex
}

func TestNewNALExtractor(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 4} {
		ex, err := NewNALExtractor(n)
		require.NoError(t, err)
		require.Equal(t, n, ex.LengthSize())
	}
	for _, n := range []int{0, 5, -1} {
		_, err := NewNALExtractor(n)
		require.ErrorIs(t, err, ErrLengthSize)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("sps", func(t *testing.T) {
		t.Parallel()
		sample := []byte{0x00, 0x00, 0x00, 0x05, 0x67, 0xAA, 0xBB, 0xCC, 0xDD}
		unit, err := newExtractor(t, 4).Extract(sample)
		require.NoError(t, err)
		require.Equal(t, uint32(5), unit.Length)
		require.Equal(t, []byte{0x67, 0xAA, 0xBB, 0xCC, 0xDD}, unit.Payload)
		require.Equal(t, mch264.NALUTypeSPS, unit.Type)
		require.Equal(t, uint8(3), unit.RefIdc)
		require.False(t, unit.IsSEI())
	})

	t.Run("prefix_longer_than_sample", func(t *testing.T) {
		t.Parallel()
		_, err := newExtractor(t, 4).Extract([]byte{0x00, 0x00, 0x05})
		require.ErrorIs(t, err, utils.ErrTruncatedNal)
	})

	t.Run("declared_length_past_end", func(t *testing.T) {
		t.Parallel()
		_, err := newExtractor(t, 4).Extract([]byte{0x00, 0x00, 0x00, 0x09, 0x65, 0x88})
		require.ErrorIs(t, err, utils.ErrTruncatedNal)
	})

	t.Run("zero_length", func(t *testing.T) {
		t.Parallel()
		unit, err := newExtractor(t, 4).Extract([]byte{0x00, 0x00, 0x00, 0x00})
		require.NoError(t, err)
		require.Equal(t, uint32(0), unit.Length)
		require.Empty(t, unit.Payload)
		require.Equal(t, "Empty", unit.String())
	})

	t.Run("short_prefixes", func(t *testing.T) {
		t.Parallel()
		unit, err := newExtractor(t, 1).Extract([]byte{0x02, 0x09, 0xf0})
		require.NoError(t, err)
		require.Equal(t, mch264.NALUTypeAccessUnitDelimiter, unit.Type)

		unit, err = newExtractor(t, 2).Extract([]byte{0x00, 0x03, 0x65, 0x88, 0x84, 0xff})
		require.NoError(t, err)
		require.Equal(t, mch264.NALUTypeIDR, unit.Type)
		require.Equal(t, uint32(3), unit.Length)
	})

	t.Run("sei", func(t *testing.T) {
		t.Parallel()
		unit, err := newExtractor(t, 4).Extract([]byte{0x00, 0x00, 0x00, 0x03, 0x06, 0x05, 0x80})
		require.NoError(t, err)
		require.True(t, unit.IsSEI())
	})

	t.Run("end_of_stream", func(t *testing.T) {
		t.Parallel()
		unit, err := newExtractor(t, 4).Extract([]byte{0x00, 0x00, 0x00, 0x01, 0x0b})
		require.NoError(t, err)
		require.Equal(t, mch264.NALUTypeEndOfStream, unit.Type)
	})
}

func TestExtractIncomplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample []byte
	}{
		{"forbidden_bit", []byte{0x00, 0x00, 0x00, 0x02, 0xe7, 0x80}},
		{"embedded_start_code", []byte{0x00, 0x00, 0x00, 0x05, 0x65, 0x00, 0x00, 0x01, 0x80}},
		{"no_stop_bit", []byte{0x00, 0x00, 0x00, 0x03, 0x68, 0x00, 0x00}},
		{"header_only_slice", []byte{0x00, 0x00, 0x00, 0x01, 0x41}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newExtractor(t, 4).Extract(tt.sample)
			require.ErrorIs(t, err, utils.ErrIncompleteNal)
		})
	}
}

func TestExtractOnlyFirstUnit(t *testing.T) {
	t.Parallel()

	sample := []byte{
		0x00, 0x00, 0x00, 0x02, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x03, 0x65, 0x88, 0x84,
	}
	ex := newExtractor(t, 4)

	unit, err := ex.Extract(sample)
	require.NoError(t, err)
	require.Equal(t, mch264.NALUTypeAccessUnitDelimiter, unit.Type)

	units, err := ex.ExtractAll(sample)
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, mch264.NALUTypeIDR, units[1].Type)
}

func TestExtractAllTruncatedTail(t *testing.T) {
	t.Parallel()

	sample := []byte{
		0x00, 0x00, 0x00, 0x02, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x05, 0x65,
	}
	units, err := newExtractor(t, 4).ExtractAll(sample)
	require.ErrorIs(t, err, utils.ErrTruncatedNal)
	require.Len(t, units, 1)
}
