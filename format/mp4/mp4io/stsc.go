package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const STSC = Tag(0x73747363)

func (self SampleToChunk) Tag() Tag {
	return STSC
}

type SampleToChunk struct {
	Version uint8
	Flags   uint32
	Entries []SampleToChunkEntry
	AtomPos
}

func (self SampleToChunk) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSC))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self SampleToChunk) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, self.Version, self.Flags)
	pio.PutU32BE(b[n:], uint32(len(self.Entries)))
	n += 4
	for _, entry := range self.Entries {
		PutSampleToChunkEntry(b[n:], entry)
		n += LenSampleToChunkEntry
	}
	return
}
func (self SampleToChunk) Len() (n int) {
	n += 8
	n += 4
	n += 4
	n += LenSampleToChunkEntry * len(self.Entries)
	return
}
func (self *SampleToChunk) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if self.Version, self.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	var count int
	if count, n, err = getEntryCount(b, n, offset, LenSampleToChunkEntry, "SampleToChunkEntry"); err != nil {
		return
	}
	self.Entries = make([]SampleToChunkEntry, count)
	for i := range self.Entries {
		self.Entries[i] = GetSampleToChunkEntry(b[n:])
		n += LenSampleToChunkEntry
	}
	return
}
func (self SampleToChunk) Children() (r []Atom) {
	return
}

func putFullBoxHeader(b []byte, version uint8, flags uint32) int {
	pio.PutU8(b, version)
	pio.PutU24BE(b[1:], flags)
	return 4
}

func getFullBoxHeader(b []byte, n, offset int) (version uint8, flags uint32, _ int, err error) {
	if len(b) < n+4 {
		err = parseErr("Version", n+offset, nil)
		return
	}
	version = pio.U8(b[n:])
	flags = pio.U24BE(b[n+1:])
	return version, flags, n + 4, nil
}

// getEntryCount reads a 32-bit entry count and checks that count entries of entryLen bytes
// fit in the remainder of b.
func getEntryCount(b []byte, n, offset, entryLen int, debug string) (count int, _ int, err error) {
	if len(b) < n+4 {
		err = parseErr("EntryCount", n+offset, nil)
		return
	}
	count = int(pio.U32BE(b[n:]))
	n += 4
	if (len(b)-n)/entryLen < count {
		err = parseErr(debug, n+offset, nil)
		return
	}
	return count, n, nil
}
