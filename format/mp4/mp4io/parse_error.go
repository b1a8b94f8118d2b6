package mp4io

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ugparu/mp4inspect/utils"
)

// ParseError is a chain of (field or box, absolute offset) pairs, innermost first,
// describing where atom decoding failed.
type ParseError struct {
	Debug  string
	Offset int
	prev   *ParseError
}

func (p *ParseError) Error() string {
	s := []string{}
	for err := p; err != nil; err = err.prev {
		s = append(s, fmt.Sprintf("%s:%d", err.Debug, err.Offset))
	}
	return "mp4io: parse error: " + strings.Join(s, ",")
}

func (p *ParseError) Is(target error) bool {
	return target == utils.ErrMalformedBox
}

// parseErr starts a chain when prev is nil and extends it when prev is a ParseError.
// Any other error is returned unchanged.
func parseErr(debug string, offset int, prev error) error {
	if prev == nil {
		return &ParseError{Debug: debug, Offset: offset}
	}
	var ppe *ParseError
	if !errors.As(prev, &ppe) {
		return prev
	}
	return &ParseError{Debug: debug, Offset: offset, prev: ppe}
}
