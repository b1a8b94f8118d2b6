package mp4

import (
	"io"

	gomp4 "github.com/abema/go-mp4"
	"github.com/ugparu/mp4inspect/format/mp4/mp4io"
)

const defaultDecodeLimit = 64 * 1024

var mdatTag = mp4io.StringToTag("mdat")

// payloadDecoder renders leaf box bodies with go-mp4's box registry.
// mdat and bodies larger than limit are skipped.
type payloadDecoder struct {
	limit uint64
}

func (d payloadDecoder) Decode(r io.ReadSeeker, hdr mp4io.BoxHeader, size uint64) (string, bool, error) {
	if hdr.Type == mdatTag || size > d.limit {
		return "", false, nil
	}

	var boxType gomp4.BoxType
	copy(boxType[:], hdr.Raw()[4:8])
	ctx := gomp4.Context{}
	if !boxType.IsSupported(ctx) {
		return "", false, nil
	}

	box, _, err := gomp4.UnmarshalAny(r, boxType, size, ctx)
	if err != nil {
		return "", false, err
	}
	s, err := gomp4.Stringify(box, ctx)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}
