package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const STBL = Tag(0x7374626c)

func (self SampleTable) Tag() Tag {
	return STBL
}

// SampleTable holds the tables needed to locate samples. stts, ctts, stss and the
// other timing boxes are kept opaque in Unknowns.
type SampleTable struct {
	SampleDesc    *SampleDesc
	SampleToChunk *SampleToChunk
	SampleSize    *SampleSize
	ChunkOffset   *ChunkOffset
	ChunkOffset64 *ChunkOffset64
	Unknowns      []Atom
	AtomPos
}

func (self SampleTable) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STBL))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self SampleTable) marshal(b []byte) (n int) {
	if self.SampleDesc != nil {
		n += self.SampleDesc.Marshal(b[n:])
	}
	for _, atom := range self.Unknowns {
		n += atom.Marshal(b[n:])
	}
	if self.SampleToChunk != nil {
		n += self.SampleToChunk.Marshal(b[n:])
	}
	if self.SampleSize != nil {
		n += self.SampleSize.Marshal(b[n:])
	}
	if self.ChunkOffset != nil {
		n += self.ChunkOffset.Marshal(b[n:])
	}
	if self.ChunkOffset64 != nil {
		n += self.ChunkOffset64.Marshal(b[n:])
	}
	return
}
func (self SampleTable) Len() (n int) {
	n += 8
	if self.SampleDesc != nil {
		n += self.SampleDesc.Len()
	}
	if self.SampleToChunk != nil {
		n += self.SampleToChunk.Len()
	}
	if self.SampleSize != nil {
		n += self.SampleSize.Len()
	}
	if self.ChunkOffset != nil {
		n += self.ChunkOffset.Len()
	}
	if self.ChunkOffset64 != nil {
		n += self.ChunkOffset64.Len()
	}
	for _, atom := range self.Unknowns {
		n += atom.Len()
	}
	return
}
func (self *SampleTable) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		if hdrLen != HeaderSize {
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
			n += size
			continue
		}
		switch tag {
		case STSD:
			atom := &SampleDesc{}
			if err = unmarshalChild(atom, b, n, size, offset, "stsd"); err != nil {
				return
			}
			self.SampleDesc = atom
		case STSC:
			atom := &SampleToChunk{}
			if err = unmarshalChild(atom, b, n, size, offset, "stsc"); err != nil {
				return
			}
			self.SampleToChunk = atom
		case STSZ:
			atom := &SampleSize{}
			if err = unmarshalChild(atom, b, n, size, offset, "stsz"); err != nil {
				return
			}
			self.SampleSize = atom
		case STCO:
			atom := &ChunkOffset{}
			if err = unmarshalChild(atom, b, n, size, offset, "stco"); err != nil {
				return
			}
			self.ChunkOffset = atom
		case CO64:
			atom := &ChunkOffset64{}
			if err = unmarshalChild(atom, b, n, size, offset, "co64"); err != nil {
				return
			}
			self.ChunkOffset64 = atom
		default:
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}
func (self SampleTable) Children() (r []Atom) {
	if self.SampleDesc != nil {
		r = append(r, self.SampleDesc)
	}
	if self.SampleToChunk != nil {
		r = append(r, self.SampleToChunk)
	}
	if self.SampleSize != nil {
		r = append(r, self.SampleSize)
	}
	if self.ChunkOffset != nil {
		r = append(r, self.ChunkOffset)
	}
	if self.ChunkOffset64 != nil {
		r = append(r, self.ChunkOffset64)
	}
	r = append(r, self.Unknowns...)
	return
}
