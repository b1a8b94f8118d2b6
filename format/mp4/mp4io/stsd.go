package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const STSD = Tag(0x73747364)

func (self SampleDesc) Tag() Tag {
	return STSD
}

// SampleDesc decodes 'avc1' entries. Every other sample entry is kept opaque.
type SampleDesc struct {
	Version  uint8
	Flags    uint32
	AVC1Desc *AVC1Desc
	Unknowns []Atom
	AtomPos
}

func (self SampleDesc) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSD))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self SampleDesc) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, self.Version, self.Flags)
	entries := len(self.Unknowns)
	if self.AVC1Desc != nil {
		entries++
	}
	pio.PutU32BE(b[n:], uint32(entries))
	n += 4
	if self.AVC1Desc != nil {
		n += self.AVC1Desc.Marshal(b[n:])
	}
	for _, atom := range self.Unknowns {
		n += atom.Marshal(b[n:])
	}
	return
}
func (self SampleDesc) Len() (n int) {
	n += 8
	n += 4
	n += 4
	if self.AVC1Desc != nil {
		n += self.AVC1Desc.Len()
	}
	for _, atom := range self.Unknowns {
		n += atom.Len()
	}
	return
}
func (self *SampleDesc) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if self.Version, self.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	if len(b) < n+4 {
		err = parseErr("EntryCount", n+offset, nil)
		return
	}
	n += 4
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		if tag == AVC1 && hdrLen == HeaderSize && self.AVC1Desc == nil {
			atom := &AVC1Desc{}
			if err = unmarshalChild(atom, b, n, size, offset, "avc1"); err != nil {
				return
			}
			self.AVC1Desc = atom
		} else {
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}
func (self SampleDesc) Children() (r []Atom) {
	if self.AVC1Desc != nil {
		r = append(r, self.AVC1Desc)
	}
	r = append(r, self.Unknowns...)
	return
}
