package mp4io

import (
	"github.com/ugparu/mp4inspect/utils/bits/pio"
)

type SampleToChunkEntry struct {
	FirstChunk      uint32
	SamplesPerChunk uint32
	SampleDescId    uint32
}

func GetSampleToChunkEntry(b []byte) (self SampleToChunkEntry) {
	self.FirstChunk = pio.U32BE(b[0:])
	self.SamplesPerChunk = pio.U32BE(b[4:])
	self.SampleDescId = pio.U32BE(b[8:])
	return
}
func PutSampleToChunkEntry(b []byte, self SampleToChunkEntry) {
	pio.PutU32BE(b[0:], self.FirstChunk)
	pio.PutU32BE(b[4:], self.SamplesPerChunk)
	pio.PutU32BE(b[8:], self.SampleDescId)
}

const LenSampleToChunkEntry = 12

// unmarshalChild decodes b[n:n+size] into atom, prefixing any failure with debug.
func unmarshalChild(atom Atom, b []byte, n, size, offset int, debug string) error {
	if _, err := atom.Unmarshal(b[n:n+size], offset+n); err != nil {
		return parseErr(debug, n+offset, err)
	}
	return nil
}

func unknownChild(tag Tag, b []byte, n, size, offset int) *Dummy {
	atom := &Dummy{Tag_: tag}
	_, _ = atom.Unmarshal(b[n:n+size], offset+n)
	return atom
}

const MOOV = Tag(0x6d6f6f76)

func (m Movie) Tag() Tag {
	return MOOV
}

type Movie struct {
	Tracks   []*Track
	Unknowns []Atom
	AtomPos
}

func (m Movie) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MOOV))
	n += m.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (m Movie) marshal(b []byte) (n int) {
	for _, atom := range m.Tracks {
		n += atom.Marshal(b[n:])
	}
	for _, atom := range m.Unknowns {
		n += atom.Marshal(b[n:])
	}
	return
}

func (m Movie) Len() (n int) {
	n += 8
	for _, atom := range m.Tracks {
		n += atom.Len()
	}
	for _, atom := range m.Unknowns {
		n += atom.Len()
	}
	return
}

func (m *Movie) Unmarshal(b []byte, offset int) (n int, err error) {
	(&m.AtomPos).setPos(offset, len(b))
	n += 8
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		if tag == TRAK && hdrLen == HeaderSize {
			atom := &Track{}
			if err = unmarshalChild(atom, b, n, size, offset, "trak"); err != nil {
				return
			}
			m.Tracks = append(m.Tracks, atom)
		} else {
			m.Unknowns = append(m.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}

func (m Movie) Children() (r []Atom) {
	for _, atom := range m.Tracks {
		r = append(r, atom)
	}
	r = append(r, m.Unknowns...)
	return
}

// VideoTracks returns the tracks whose handler type is "vide".
func (m *Movie) VideoTracks() (tracks []*Track) {
	for _, track := range m.Tracks {
		if track.HandlerType() == "vide" {
			tracks = append(tracks, track)
		}
	}
	return
}
