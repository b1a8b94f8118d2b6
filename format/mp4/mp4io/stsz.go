package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const STSZ = Tag(0x7374737a)

func (self SampleSize) Tag() Tag {
	return STSZ
}

// SampleSize carries either one constant SampleSize for every sample or, when SampleSize is 0,
// an explicit size per sample in Entries. SampleCount is the count stored in the box.
type SampleSize struct {
	Version     uint8
	Flags       uint32
	SampleSize  uint32
	SampleCount uint32
	Entries     []uint32
	AtomPos
}

func (self SampleSize) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSZ))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self SampleSize) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, self.Version, self.Flags)
	pio.PutU32BE(b[n:], self.SampleSize)
	n += 4
	count := self.SampleCount
	if count == 0 {
		count = uint32(len(self.Entries))
	}
	pio.PutU32BE(b[n:], count)
	n += 4
	for _, entry := range self.Entries {
		pio.PutU32BE(b[n:], entry)
		n += 4
	}
	return
}
func (self SampleSize) Len() (n int) {
	n += 8
	n += 4
	n += 4
	n += 4
	n += 4 * len(self.Entries)
	return
}
func (self *SampleSize) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if self.Version, self.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	if len(b) < n+4 {
		err = parseErr("SampleSize", n+offset, nil)
		return
	}
	self.SampleSize = pio.U32BE(b[n:])
	n += 4
	if self.SampleSize != 0 {
		if len(b) < n+4 {
			err = parseErr("SampleCount", n+offset, nil)
			return
		}
		self.SampleCount = pio.U32BE(b[n:])
		n += 4
		return
	}
	var count int
	if count, n, err = getEntryCount(b, n, offset, 4, "uint32"); err != nil {
		return
	}
	self.SampleCount = uint32(count)
	self.Entries = make([]uint32, count)
	for i := range self.Entries {
		self.Entries[i] = pio.U32BE(b[n:])
		n += 4
	}
	return
}
func (self SampleSize) Children() (r []Atom) {
	return
}
