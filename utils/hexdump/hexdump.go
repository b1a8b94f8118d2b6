// Package hexdump renders byte ranges as indented rows of 16 hex octets, each row
// prefixed with its offset, for human inspection of box headers and payloads.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const cols = 16

// Fprint writes buf to w. An empty buf still produces the "0000::" row.
func Fprint(w io.Writer, buf []byte, indent string) (err error) {
	sb := new(strings.Builder)
	for row := 0; row <= len(buf)/cols; row++ {
		start := row * cols
		if start == len(buf) && start != 0 {
			break
		}
		fmt.Fprintf(sb, "%s%04x::", indent, start)
		end := min(start+cols, len(buf))
		for _, b := range buf[start:end] {
			fmt.Fprintf(sb, " %02x", b)
		}
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return
}

// Sprint returns the rows Fprint would write.
func Sprint(buf []byte, indent string) string {
	sb := new(strings.Builder)
	_ = Fprint(sb, buf, indent)
	return sb.String()
}
