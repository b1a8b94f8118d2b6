package utils

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	ioErr := NewIOError("read", 42, io.ErrUnexpectedEOF)
	require.ErrorIs(t, ioErr, ErrIO)
	require.ErrorIs(t, ioErr, io.ErrUnexpectedEOF)
	require.NoError(t, NewIOError("read", 0, nil))

	boxErr := fmt.Errorf("walk: %w", &MalformedBoxError{Type: "moov", Offset: 8, Reason: "size smaller than header"})
	require.ErrorIs(t, boxErr, ErrMalformedBox)
	require.NotErrorIs(t, boxErr, ErrInconsistentSampleTable)
	require.Contains(t, boxErr.Error(), "'moov' at offset 8")

	tblErr := &SampleTableError{SampleIndex: 4, ChunkIndex: 2, Reason: "sizes exhausted"}
	require.ErrorIs(t, tblErr, ErrInconsistentSampleTable)
	require.Contains(t, tblErr.Error(), "sample 4, chunk 2")
}

func TestLocate(t *testing.T) {
	t.Parallel()

	err := Locate(&NALError{Kind: ErrTruncatedNal, Reason: "short"}, 7, 1000, 3)
	require.ErrorIs(t, err, ErrTruncatedNal)

	var nalErr *NALError
	require.True(t, errors.As(err, &nalErr))
	require.Equal(t, uint32(7), nalErr.SampleIndex)
	require.Equal(t, "truncated nal in sample 7 [1000, 1003): short", err.Error())

	plain := errors.New("other")
	require.Equal(t, plain, Locate(plain, 1, 2, 3))
}
