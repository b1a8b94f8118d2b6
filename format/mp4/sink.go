package mp4

import (
	"fmt"
	"io"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ugparu/mp4inspect/format/mp4/mp4io"
	"github.com/ugparu/mp4inspect/utils/hexdump"
)

const indentStep = "    "

// textSink prints every box as its header line, the raw header bytes and, for leaves,
// a hex preview of the body.
type textSink struct {
	w io.Writer
}

func (s *textSink) Box(p *mp4io.BoxPreview) (err error) {
	indent := strings.Repeat(indentStep, p.Depth)
	if _, err = fmt.Fprintf(s.w, "%s%s (%s)\n", indent, p.Header, bytefmt.ByteSize(p.BodySize)); err != nil {
		return
	}
	if err = hexdump.Fprint(s.w, p.Header.Raw(), indent); err != nil {
		return
	}
	if p.Container {
		return
	}

	if _, err = fmt.Fprintf(s.w, "%sBODY (%d)\n", indent, p.BodySize); err != nil {
		return
	}
	if err = hexdump.Fprint(s.w, p.Body, indent); err != nil {
		return
	}
	if p.Truncated {
		if _, err = fmt.Fprintf(s.w, "%s...\n", indent); err != nil {
			return
		}
	}
	if p.Decoded != "" {
		if _, err = fmt.Fprintf(s.w, "%sDECODED %s\n", indent, p.Decoded); err != nil {
			return
		}
	}
	_, err = fmt.Fprintln(s.w)
	return
}

func (s *textSink) EndLevel(int) error {
	_, err := fmt.Fprintln(s.w)
	return err
}
