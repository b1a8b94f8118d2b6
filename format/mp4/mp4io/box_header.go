package mp4io

import (
	"fmt"
	"io"

	"github.com/ugparu/mp4inspect/utils"
	"github.com/ugparu/mp4inspect/utils/bits/pio"
)

// BoxHeader is the size/type prefix of a box as found in the file.
type BoxHeader struct {
	Offset    int64  // Absolute offset of the first header byte.
	Size      uint64 // Total box size including the header; 0 means "to the end of the parent".
	Type      Tag
	HeaderLen uint32 // 8, or 16 when a 64-bit size follows the type.
	raw       [ExtendedHeaderSize]byte
}

// ExtendsToEnd reports the size==0 form.
func (h BoxHeader) ExtendsToEnd() bool {
	return h.Size == 0
}

// BodySize is the payload size. It is 0 for boxes that extend to the end of their parent,
// whose body size depends on the enclosing container.
func (h BoxHeader) BodySize() uint64 {
	if h.ExtendsToEnd() {
		return 0
	}
	return h.Size - uint64(h.HeaderLen)
}

// Raw returns the header bytes exactly as read.
func (h BoxHeader) Raw() []byte {
	return h.raw[:h.HeaderLen]
}

func (h BoxHeader) String() string {
	return fmt.Sprintf("%s offset=%d size=%d header=%d", h.Type, h.Offset, h.Size, h.HeaderLen)
}

// ReadBoxHeader reads one box header from r, which must be positioned at offset.
// It consumes exactly HeaderLen bytes and never touches the body.
func ReadBoxHeader(r io.Reader, offset int64) (h BoxHeader, err error) {
	h.Offset = offset
	h.HeaderLen = HeaderSize
	if _, err = io.ReadFull(r, h.raw[:HeaderSize]); err != nil {
		err = utils.NewIOError("read box header", offset, err)
		return
	}
	h.Size = uint64(pio.U32BE(h.raw[0:]))
	h.Type = Tag(pio.U32BE(h.raw[4:]))

	if h.Size == 1 {
		if _, err = io.ReadFull(r, h.raw[HeaderSize:ExtendedHeaderSize]); err != nil {
			err = utils.NewIOError("read box large size", offset+HeaderSize, err)
			return
		}
		h.Size = pio.U64BE(h.raw[HeaderSize:])
		h.HeaderLen = ExtendedHeaderSize
	}

	if h.Size != 0 && h.Size < uint64(h.HeaderLen) {
		err = &utils.MalformedBoxError{
			Type:   h.Type.String(),
			Offset: offset,
			Reason: fmt.Sprintf("size %d is smaller than its %d-byte header", h.Size, h.HeaderLen),
		}
	}
	return
}
