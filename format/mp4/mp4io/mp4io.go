// nolint: all
package mp4io

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ugparu/mp4inspect/utils"
	"github.com/ugparu/mp4inspect/utils/bits/pio"
)

const (
	HeaderSize         = 8
	ExtendedHeaderSize = 16
)

type Tag uint32

func (self Tag) String() string {
	var b [4]byte
	pio.PutU32BE(b[:], uint32(self))
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

type Atom interface {
	Pos() (int, int)
	Tag() Tag
	Marshal([]byte) int
	Unmarshal([]byte, int) (int, error)
	Len() int
	Children() []Atom
}

type AtomPos struct {
	Offset int
	Size   int
}

func (self AtomPos) Pos() (int, int) {
	return self.Offset, self.Size
}

func (self *AtomPos) setPos(offset int, size int) {
	self.Offset, self.Size = offset, size
}

type Dummy struct {
	Data []byte
	Tag_ Tag
	AtomPos
}

func (self Dummy) Children() []Atom {
	return nil
}

func (self Dummy) Tag() Tag {
	return self.Tag_
}

func (self Dummy) Len() int {
	return len(self.Data)
}

func (self Dummy) Marshal(b []byte) int {
	copy(b, self.Data)
	return len(self.Data)
}

func (self *Dummy) Unmarshal(b []byte, offset int) (n int, err error) {
	(&self.AtomPos).setPos(offset, len(b))
	self.Data = b
	n = len(b)
	return
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], []byte(tag))
	return Tag(pio.U32BE(b[:]))
}

func FindChildrenByName(root Atom, tag string) Atom {
	return FindChildren(root, StringToTag(tag))
}

func FindChildren(root Atom, tag Tag) Atom {
	if root.Tag() == tag {
		return root
	}
	for _, child := range root.Children() {
		if r := FindChildren(child, tag); r != nil {
			return r
		}
	}
	return nil
}

// childHeader decodes the header of the child box starting at b[n:]. Children with a 64-bit
// size are reported with hdrLen 16 and are kept opaque by the container decoders.
// A zero size means the child runs to the end of b.
func childHeader(b []byte, n int, offset int) (tag Tag, size int, hdrLen int, err error) {
	size = int(pio.U32BE(b[n:]))
	tag = Tag(pio.U32BE(b[n+4:]))
	hdrLen = HeaderSize
	switch size {
	case 0:
		size = len(b) - n
	case 1:
		if len(b) < n+ExtendedHeaderSize {
			err = parseErr("LargeSize", n+offset, nil)
			return
		}
		large := pio.U64BE(b[n+8:])
		if large > uint64(len(b)-n) {
			err = parseErr("TagSizeInvalid", n+offset, nil)
			return
		}
		size = int(large)
		hdrLen = ExtendedHeaderSize
	}
	if size < hdrLen || len(b) < n+size {
		err = parseErr("TagSizeInvalid", n+offset, nil)
	}
	return
}

// ReadFileAtoms reads the top-level boxes of r. 'moov' is decoded into a Movie, every other
// box is recorded as a Dummy with its position only and skipped without reading its body.
func ReadFileAtoms(r io.ReadSeeker) (atoms []Atom, err error) {
	fileEnd, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, utils.NewIOError("seek", 0, err)
	}
	var offset int64
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, utils.NewIOError("seek", 0, err)
	}

	for offset < fileEnd {
		var hdr BoxHeader
		if hdr, err = ReadBoxHeader(r, offset); err != nil {
			return
		}

		size := int64(hdr.Size)
		if hdr.ExtendsToEnd() {
			size = fileEnd - offset
		}
		if offset+size > fileEnd {
			return atoms, &utils.MalformedBoxError{
				Type: hdr.Type.String(), Offset: offset, Reason: "box runs past end of file",
			}
		}

		if hdr.Type == MOOV {
			// re-framed behind a plain 8-byte header whatever form the file used
			body := size - int64(hdr.HeaderLen)
			if HeaderSize+body > math.MaxUint32 {
				return atoms, &utils.MalformedBoxError{Type: "moov", Offset: offset, Reason: "moov larger than 4GiB"}
			}
			atom := &Movie{}
			b := make([]byte, HeaderSize+body)
			pio.PutU32BE(b, uint32(len(b)))
			pio.PutU32BE(b[4:], uint32(MOOV))
			if _, err = io.ReadFull(r, b[HeaderSize:]); err != nil {
				return atoms, utils.NewIOError("read moov", offset+int64(hdr.HeaderLen), err)
			}
			if _, err = atom.Unmarshal(b, int(offset)+int(hdr.HeaderLen)-HeaderSize); err != nil {
				return
			}
			atom.setPos(int(offset), int(size))
			atoms = append(atoms, atom)
		} else {
			dummy := &Dummy{Tag_: hdr.Type}
			dummy.setPos(int(offset), int(size))
			atoms = append(atoms, dummy)
		}

		offset += size
		if _, err = r.Seek(offset, io.SeekStart); err != nil {
			return atoms, utils.NewIOError("seek", offset, err)
		}
	}
	return
}

// FindMovie returns the first decoded 'moov' among atoms.
func FindMovie(atoms []Atom) (*Movie, error) {
	for _, atom := range atoms {
		if moov, ok := atom.(*Movie); ok {
			return moov, nil
		}
	}
	return nil, errors.New("mp4io: 'moov' atom not found")
}

func printatom(out io.Writer, root Atom, depth int) {
	offset, size := root.Pos()

	type stringintf interface {
		String() string
	}

	fmt.Fprintf(out,
		"%s%s offset=%d size=%d",
		strings.Repeat(" ", depth*2), root.Tag(), offset, size,
	)
	if str, ok := root.(stringintf); ok {
		fmt.Fprint(out, " ", str.String())
	}
	fmt.Fprintln(out)

	children := root.Children()
	for _, child := range children {
		printatom(out, child, depth+1)
	}
}

func FprintAtom(out io.Writer, root Atom) {
	printatom(out, root, 0)
}

func PrintAtom(root Atom) {
	FprintAtom(os.Stdout, root)
}

func (self SampleToChunk) String() string {
	return fmt.Sprintf("entries=%d", len(self.Entries))
}

func (self SampleSize) String() string {
	if self.SampleSize != 0 {
		return fmt.Sprintf("constant=%d", self.SampleSize)
	}
	return fmt.Sprintf("entries=%d", len(self.Entries))
}

func (self ChunkOffset) String() string {
	return fmt.Sprintf("entries=%d", len(self.Entries))
}

func (self ChunkOffset64) String() string {
	return fmt.Sprintf("entries=%d", len(self.Entries))
}

func (self *Track) GetAVC1Conf() (conf *AVC1Conf) {
	atom := FindChildren(self, AVCC)
	conf, _ = atom.(*AVC1Conf)
	return
}

// HandlerType returns the 'hdlr' handler type of the track ("vide", "soun", ...) or "" if absent.
func (self *Track) HandlerType() string {
	if self.Media == nil || self.Media.Handler == nil {
		return ""
	}
	return string(self.Media.Handler.HandlerType[:])
}

// SampleTable returns the track's 'stbl' or nil.
func (self *Track) SampleTable() *SampleTable {
	if self.Media == nil || self.Media.Info == nil {
		return nil
	}
	return self.Media.Info.Sample
}
