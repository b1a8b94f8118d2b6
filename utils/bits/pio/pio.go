// Package pio contains big-endian integer accessors for byte slices.
// Callers are responsible for bounds: every getter expects len(b) to cover the value.
package pio

func U8(b []byte) uint8 {
	return b[0]
}

func U16BE(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func I16BE(b []byte) int16 {
	return int16(U16BE(b)) //nolint:gosec
}

func U24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func U32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func I32BE(b []byte) int32 {
	return int32(U32BE(b)) //nolint:gosec
}

func U64BE(b []byte) uint64 {
	return uint64(U32BE(b))<<32 | uint64(U32BE(b[4:]))
}

func I64BE(b []byte) int64 {
	return int64(U64BE(b)) //nolint:gosec
}

// UintBE reads an n-byte (1..8) big-endian unsigned integer.
func UintBE(b []byte, n int) (v uint64) {
	for i := range n {
		v = v<<8 | uint64(b[i])
	}
	return
}

func PutU8(b []byte, v uint8) {
	b[0] = v
}

func PutU16BE(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func PutI16BE(b []byte, v int16) {
	PutU16BE(b, uint16(v)) //nolint:gosec
}

func PutU24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func PutU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func PutI32BE(b []byte, v int32) {
	PutU32BE(b, uint32(v)) //nolint:gosec
}

func PutU64BE(b []byte, v uint64) {
	PutU32BE(b, uint32(v>>32))
	PutU32BE(b[4:], uint32(v)) //nolint:gosec
}

// PutUintBE writes v as an n-byte (1..8) big-endian unsigned integer.
func PutUintBE(b []byte, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
