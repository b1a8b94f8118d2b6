package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Every concrete error below matches exactly one of these with errors.Is.
var (
	ErrIO                      = errors.New("io error")
	ErrMalformedBox            = errors.New("malformed box")
	ErrInconsistentSampleTable = errors.New("inconsistent sample table")
	ErrTruncatedNal            = errors.New("truncated nal")
	ErrIncompleteNal           = errors.New("incomplete nal")
	ErrUnsupported             = errors.New("unsupported")
)

// IOError wraps a failed open/seek/read together with the absolute file offset it happened at.
type IOError struct {
	Op     string
	Offset int64
	Err    error
}

// Error returns the error message for IOError.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewIOError returns nil if err is nil.
func NewIOError(op string, offset int64, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Offset: offset, Err: err}
}

// MalformedBoxError reports a header or structure inconsistency of one box.
type MalformedBoxError struct {
	Type   string
	Offset int64
	Reason string
}

// Error returns the error message for MalformedBoxError.
func (e *MalformedBoxError) Error() string {
	return fmt.Sprintf("malformed box '%s' at offset %d: %s", e.Type, e.Offset, e.Reason)
}

func (e *MalformedBoxError) Is(target error) bool {
	return target == ErrMalformedBox
}

// SampleTableError reports that stsc/stco/stsz could not be reconciled.
type SampleTableError struct {
	SampleIndex uint32
	ChunkIndex  uint32
	Reason      string
}

// Error returns the error message for SampleTableError.
func (e *SampleTableError) Error() string {
	return fmt.Sprintf("inconsistent sample table at sample %d, chunk %d: %s", e.SampleIndex, e.ChunkIndex, e.Reason)
}

func (e *SampleTableError) Is(target error) bool {
	return target == ErrInconsistentSampleTable
}

// NALError reports a NAL unit that could not be extracted from a sample.
// Kind is either ErrTruncatedNal or ErrIncompleteNal.
type NALError struct {
	Kind        error
	SampleIndex uint32
	Offset      uint64
	Size        uint32
	Reason      string
}

// Error returns the error message for NALError.
func (e *NALError) Error() string {
	return fmt.Sprintf("%v in sample %d [%d, %d): %s",
		e.Kind, e.SampleIndex, e.Offset, e.Offset+uint64(e.Size), e.Reason)
}

func (e *NALError) Unwrap() error {
	return e.Kind
}

// Locate fills in sample coordinates of a NAL error produced without them.
// Errors of other types are returned unchanged.
func Locate(err error, sampleIndex uint32, offset uint64, size uint32) error {
	var nalErr *NALError
	if !errors.As(err, &nalErr) {
		return err
	}
	located := *nalErr
	located.SampleIndex, located.Offset, located.Size = sampleIndex, offset, size
	return &located
}
