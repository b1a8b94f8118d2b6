package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const (
	STCO = Tag(0x7374636f)
	CO64 = Tag(0x636f3634)
)

func (self ChunkOffset) Tag() Tag {
	return STCO
}

// ChunkOffset is the 32-bit chunk offset table ('stco').
type ChunkOffset struct {
	Version uint8
	Flags   uint32
	Entries []uint32
	AtomPos
}

func (self ChunkOffset) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STCO))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self ChunkOffset) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, self.Version, self.Flags)
	pio.PutU32BE(b[n:], uint32(len(self.Entries)))
	n += 4
	for _, entry := range self.Entries {
		pio.PutU32BE(b[n:], entry)
		n += 4
	}
	return
}
func (self ChunkOffset) Len() (n int) {
	return 8 + 4 + 4 + 4*len(self.Entries)
}
func (self *ChunkOffset) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if self.Version, self.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	var count int
	if count, n, err = getEntryCount(b, n, offset, 4, "uint32"); err != nil {
		return
	}
	self.Entries = make([]uint32, count)
	for i := range self.Entries {
		self.Entries[i] = pio.U32BE(b[n:])
		n += 4
	}
	return
}
func (self ChunkOffset) Children() (r []Atom) {
	return
}

func (self ChunkOffset64) Tag() Tag {
	return CO64
}

// ChunkOffset64 is the 64-bit chunk offset table ('co64').
type ChunkOffset64 struct {
	Version uint8
	Flags   uint32
	Entries []uint64
	AtomPos
}

func (self ChunkOffset64) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(CO64))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self ChunkOffset64) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, self.Version, self.Flags)
	pio.PutU32BE(b[n:], uint32(len(self.Entries)))
	n += 4
	for _, entry := range self.Entries {
		pio.PutU64BE(b[n:], entry)
		n += 8
	}
	return
}
func (self ChunkOffset64) Len() (n int) {
	return 8 + 4 + 4 + 8*len(self.Entries)
}
func (self *ChunkOffset64) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if self.Version, self.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	var count int
	if count, n, err = getEntryCount(b, n, offset, 8, "uint64"); err != nil {
		return
	}
	self.Entries = make([]uint64, count)
	for i := range self.Entries {
		self.Entries[i] = pio.U64BE(b[n:])
		n += 8
	}
	return
}
func (self ChunkOffset64) Children() (r []Atom) {
	return
}
