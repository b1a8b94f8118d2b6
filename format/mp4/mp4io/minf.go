package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const MINF = Tag(0x6d696e66)

func (self MediaInfo) Tag() Tag {
	return MINF
}

// MediaInfo keeps only the sample table; vmhd/smhd/dinf stay opaque.
type MediaInfo struct {
	Sample   *SampleTable
	Unknowns []Atom
	AtomPos
}

func (self MediaInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MINF))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self MediaInfo) marshal(b []byte) (n int) {
	for _, atom := range self.Unknowns {
		n += atom.Marshal(b[n:])
	}
	if self.Sample != nil {
		n += self.Sample.Marshal(b[n:])
	}
	return
}
func (self MediaInfo) Len() (n int) {
	n += 8
	if self.Sample != nil {
		n += self.Sample.Len()
	}
	for _, atom := range self.Unknowns {
		n += atom.Len()
	}
	return
}
func (self *MediaInfo) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		if tag == STBL && hdrLen == HeaderSize {
			atom := &SampleTable{}
			if err = unmarshalChild(atom, b, n, size, offset, "stbl"); err != nil {
				return
			}
			self.Sample = atom
		} else {
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}
func (self MediaInfo) Children() (r []Atom) {
	if self.Sample != nil {
		r = append(r, self.Sample)
	}
	r = append(r, self.Unknowns...)
	return
}
