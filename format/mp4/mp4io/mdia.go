package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const MDIA = Tag(0x6d646961)

func (self Media) Tag() Tag {
	return MDIA
}

type Media struct {
	Handler  *HandlerRefer
	Info     *MediaInfo
	Unknowns []Atom
	AtomPos
}

func (self Media) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MDIA))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (self Media) marshal(b []byte) (n int) {
	if self.Handler != nil {
		n += self.Handler.Marshal(b[n:])
	}
	if self.Info != nil {
		n += self.Info.Marshal(b[n:])
	}
	for _, atom := range self.Unknowns {
		n += atom.Marshal(b[n:])
	}
	return
}
func (self Media) Len() (n int) {
	n += 8
	if self.Handler != nil {
		n += self.Handler.Len()
	}
	if self.Info != nil {
		n += self.Info.Len()
	}
	for _, atom := range self.Unknowns {
		n += atom.Len()
	}
	return
}
func (self *Media) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		switch {
		case hdrLen != HeaderSize:
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		case tag == HDLR:
			atom := &HandlerRefer{}
			if err = unmarshalChild(atom, b, n, size, offset, "hdlr"); err != nil {
				return
			}
			self.Handler = atom
		case tag == MINF:
			atom := &MediaInfo{}
			if err = unmarshalChild(atom, b, n, size, offset, "minf"); err != nil {
				return
			}
			self.Info = atom
		default:
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}
func (self Media) Children() (r []Atom) {
	if self.Handler != nil {
		r = append(r, self.Handler)
	}
	if self.Info != nil {
		r = append(r, self.Info)
	}
	r = append(r, self.Unknowns...)
	return
}
