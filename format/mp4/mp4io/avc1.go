package mp4io

import (
	"fmt"

	"github.com/ugparu/mp4inspect/utils/bits/pio"
)

const AVC1 = Tag(0x61766331)

func (self AVC1Desc) Tag() Tag {
	return AVC1
}

// AVC1Desc is the visual sample entry of an H.264 track.
type AVC1Desc struct {
	DataRefIdx           int16
	Version              int16
	Revision             int16
	Vendor               int32
	TemporalQuality      int32
	SpatialQuality       int32
	Width                int16
	Height               int16
	HorizontalResolution float64
	VerticalResolution   float64
	FrameCount           int16
	CompressorName       [32]byte
	Depth                int16
	ColorTableId         int16
	Conf                 *AVC1Conf
	Unknowns             []Atom
	AtomPos
}

// visual sample entry fields up to and including ColorTableId
const lenVisualSampleEntry = 78

func (self AVC1Desc) String() string {
	return fmt.Sprintf("%dx%d", self.Width, self.Height)
}

func (self AVC1Desc) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(AVC1))
	n += self.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (self AVC1Desc) marshal(b []byte) (n int) {
	n += 6
	pio.PutI16BE(b[n:], self.DataRefIdx)
	n += 2
	pio.PutI16BE(b[n:], self.Version)
	n += 2
	pio.PutI16BE(b[n:], self.Revision)
	n += 2
	pio.PutI32BE(b[n:], self.Vendor)
	n += 4
	pio.PutI32BE(b[n:], self.TemporalQuality)
	n += 4
	pio.PutI32BE(b[n:], self.SpatialQuality)
	n += 4
	pio.PutI16BE(b[n:], self.Width)
	n += 2
	pio.PutI16BE(b[n:], self.Height)
	n += 2
	PutFixed32(b[n:], self.HorizontalResolution)
	n += 4
	PutFixed32(b[n:], self.VerticalResolution)
	n += 4
	n += 4
	pio.PutI16BE(b[n:], self.FrameCount)
	n += 2
	copy(b[n:], self.CompressorName[:])
	n += len(self.CompressorName)
	pio.PutI16BE(b[n:], self.Depth)
	n += 2
	pio.PutI16BE(b[n:], self.ColorTableId)
	n += 2
	if self.Conf != nil {
		n += self.Conf.Marshal(b[n:])
	}
	for _, atom := range self.Unknowns {
		n += atom.Marshal(b[n:])
	}
	return
}

func (self AVC1Desc) Len() (n int) {
	n += 8
	n += lenVisualSampleEntry
	if self.Conf != nil {
		n += self.Conf.Len()
	}
	for _, atom := range self.Unknowns {
		n += atom.Len()
	}
	return
}

func (self *AVC1Desc) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	n += 8
	if len(b) < n+lenVisualSampleEntry {
		err = parseErr("VisualSampleEntry", n+offset, nil)
		return
	}
	n += 6
	self.DataRefIdx = pio.I16BE(b[n:])
	n += 2
	self.Version = pio.I16BE(b[n:])
	n += 2
	self.Revision = pio.I16BE(b[n:])
	n += 2
	self.Vendor = pio.I32BE(b[n:])
	n += 4
	self.TemporalQuality = pio.I32BE(b[n:])
	n += 4
	self.SpatialQuality = pio.I32BE(b[n:])
	n += 4
	self.Width = pio.I16BE(b[n:])
	n += 2
	self.Height = pio.I16BE(b[n:])
	n += 2
	self.HorizontalResolution = GetFixed32(b[n:])
	n += 4
	self.VerticalResolution = GetFixed32(b[n:])
	n += 4
	n += 4
	self.FrameCount = pio.I16BE(b[n:])
	n += 2
	copy(self.CompressorName[:], b[n:])
	n += len(self.CompressorName)
	self.Depth = pio.I16BE(b[n:])
	n += 2
	self.ColorTableId = pio.I16BE(b[n:])
	n += 2
	for n+HeaderSize <= len(b) {
		var tag Tag
		var size, hdrLen int
		if tag, size, hdrLen, err = childHeader(b, n, offset); err != nil {
			return
		}
		if tag == AVCC && hdrLen == HeaderSize {
			atom := &AVC1Conf{}
			if err = unmarshalChild(atom, b, n, size, offset, "avcC"); err != nil {
				return
			}
			self.Conf = atom
		} else {
			self.Unknowns = append(self.Unknowns, unknownChild(tag, b, n, size, offset))
		}
		n += size
	}
	return
}

func (self AVC1Desc) Children() (r []Atom) {
	if self.Conf != nil {
		r = append(r, self.Conf)
	}
	r = append(r, self.Unknowns...)
	return
}

// GetFixed32 decodes a 16.16 fixed-point number.
func GetFixed32(b []byte) float64 {
	return float64(pio.I32BE(b)) / 65536.0
}

func PutFixed32(b []byte, f float64) {
	pio.PutI32BE(b, int32(f*65536.0))
}
