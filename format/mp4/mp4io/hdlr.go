package mp4io

import "github.com/ugparu/mp4inspect/utils/bits/pio"

const HDLR = Tag(0x68646c72)

// Handler types of interest.
const (
	HandlerVideo = "vide"
	HandlerSound = "soun"
)

type HandlerRefer struct {
	Version     uint8
	Flags       uint32
	PreDefined  uint32
	HandlerType [4]byte
	Reserved    [3]uint32
	Name        []byte
	AtomPos
}

// NewHandlerRefer returns a 'hdlr' with the given four-character handler type and name.
func NewHandlerRefer(handlerType, name string) *HandlerRefer {
	hdlr := &HandlerRefer{Name: append([]byte(name), 0)}
	copy(hdlr.HandlerType[:], handlerType)
	return hdlr
}

func (hdlr HandlerRefer) Tag() Tag {
	return HDLR
}

func (hdlr HandlerRefer) String() string {
	return "type=" + string(hdlr.HandlerType[:])
}

func (hdlr HandlerRefer) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(HDLR))
	n += hdlr.marshal(b[8:]) + 8
	pio.PutU32BE(b[0:], uint32(n))
	return
}
func (hdlr HandlerRefer) marshal(b []byte) (n int) {
	n += putFullBoxHeader(b, hdlr.Version, hdlr.Flags)
	pio.PutU32BE(b[n:], hdlr.PreDefined)
	n += 4
	copy(b[n:], hdlr.HandlerType[:])
	n += len(hdlr.HandlerType)
	for _, r := range hdlr.Reserved {
		pio.PutU32BE(b[n:], r)
		n += 4
	}
	copy(b[n:], hdlr.Name)
	n += len(hdlr.Name)
	return
}
func (hdlr HandlerRefer) Len() (n int) {
	n += 8
	n += 4
	n += 4
	n += len(hdlr.HandlerType)
	n += 4 * len(hdlr.Reserved)
	n += len(hdlr.Name)
	return
}
func (hdlr *HandlerRefer) Unmarshal(b []byte, offset int) (n int, err error) {
	(&hdlr.AtomPos).setPos(offset, len(b))
	n += 8
	if hdlr.Version, hdlr.Flags, n, err = getFullBoxHeader(b, n, offset); err != nil {
		return
	}
	if len(b) < n+4 {
		err = parseErr("PreDefined", n+offset, nil)
		return
	}
	hdlr.PreDefined = pio.U32BE(b[n:])
	n += 4
	if len(b) < n+len(hdlr.HandlerType) {
		err = parseErr("HandlerType", n+offset, nil)
		return
	}
	copy(hdlr.HandlerType[:], b[n:])
	n += len(hdlr.HandlerType)
	if len(b) < n+4*len(hdlr.Reserved) {
		err = parseErr("Reserved", n+offset, nil)
		return
	}
	for i := range hdlr.Reserved {
		hdlr.Reserved[i] = pio.U32BE(b[n:])
		n += 4
	}
	hdlr.Name = b[n:]
	n += len(b[n:])
	return
}
func (hdlr HandlerRefer) Children() (r []Atom) {
	return
}
