package nal

import (
	"errors"

	"github.com/ugparu/mp4inspect/utils/bits/pio"
)

// MaxLengthSize is the widest NALU length prefix AVCC framing allows.
const MaxLengthSize = 4

var (
	// ErrShortPrefix is returned when fewer bytes than the length prefix width remain.
	ErrShortPrefix = errors.New("nal: buffer shorter than length prefix")
	// ErrShortPayload is returned when a declared NALU length runs past the buffer.
	ErrShortPayload = errors.New("nal: declared length exceeds buffer")
)

// ValidLengthSize reports whether n is a legal AVCC length prefix width.
func ValidLengthSize(n int) bool {
	return n >= 1 && n <= MaxLengthSize
}

// ReadLength reads the lengthSize-byte big-endian NALU length at the start of b.
func ReadLength(b []byte, lengthSize int) (uint32, error) {
	if len(b) < lengthSize {
		return 0, ErrShortPrefix
	}
	return uint32(pio.UintBE(b, lengthSize)), nil //nolint:gosec // lengthSize <= 4
}

// Next splits the first length-prefixed NALU off b and returns it together with the remainder.
func Next(b []byte, lengthSize int) (nalu, rest []byte, err error) {
	length, err := ReadLength(b, lengthSize)
	if err != nil {
		return nil, b, err
	}
	b = b[lengthSize:]
	if uint64(length) > uint64(len(b)) {
		return nil, b, ErrShortPayload
	}
	return b[:length], b[length:], nil
}

// SplitAVCC splits a sample made of concatenated length-prefixed NALUs.
// Zero-length units are kept so that callers see every declared unit.
// On error the units decoded so far are returned alongside it.
func SplitAVCC(b []byte, lengthSize int) (nalus [][]byte, err error) {
	for len(b) > 0 {
		var nalu []byte
		if nalu, b, err = Next(b, lengthSize); err != nil {
			return
		}
		nalus = append(nalus, nalu)
	}
	return
}

// isStartCode checks if there's a NALU start code (0x000001 or 0x00000001) at the given position
// and returns the type of start code found (3-byte or 4-byte) and whether a start code was found.
func isStartCode(b []byte, pos int) (startCodeLength int, found bool) {
	if pos+2 >= len(b) || b[pos] != 0 {
		return 0, false
	}

	val3 := pio.U24BE(b[pos:])
	if val3 == 1 {
		return 3, true //nolint:mnd
	}

	if val3 == 0 && pos+3 < len(b) && b[pos+3] == 1 {
		return 4, true //nolint:mnd
	}

	return 0, false
}

// HasStartCode reports whether an Annex B start code appears anywhere in b.
// Inside a well-formed NALU the emulation prevention byte makes this impossible.
func HasStartCode(b []byte) bool {
	for pos := 0; pos+2 < len(b); pos++ {
		if _, found := isStartCode(b, pos); found {
			return true
		}
	}
	return false
}
