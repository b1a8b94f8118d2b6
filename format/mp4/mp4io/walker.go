package mp4io

import (
	"fmt"
	"io"

	"github.com/ugparu/mp4inspect/utils"
)

const (
	DefaultPreviewLimit = 128
	MaxPreviewLimit     = 1 << 20
	DefaultMaxDepth     = 16
)

// DefaultContainers are the box types the walker descends into.
var DefaultContainers = []Tag{MOOV, TRAK, MDIA, MINF, STBL}

// BoxPreview describes one box visited by Walk. Body aliases a buffer owned by the walker
// and is only valid for the duration of the BoxSink.Box call.
type BoxPreview struct {
	Header    BoxHeader
	Depth     int
	Container bool
	BodySize  uint64
	Body      []byte
	Truncated bool
	Decoded   string
}

// BoxSink receives the walk in file order. EndLevel is called once the children of a
// container at depth-1 (or the top level, depth 0) are exhausted.
type BoxSink interface {
	Box(p *BoxPreview) error
	EndLevel(depth int) error
}

// PayloadDecoder renders the body of a leaf box. r is positioned at the first body byte
// and the decoder must not read more than size bytes. ok is false for unsupported types.
type PayloadDecoder interface {
	Decode(r io.ReadSeeker, hdr BoxHeader, size uint64) (s string, ok bool, err error)
}

type walkConfig struct {
	previewLimit int
	maxDepth     int
	containers   map[Tag]bool
	decoder      PayloadDecoder
}

type WalkOption func(*walkConfig)

// WithPreviewLimit bounds the number of body bytes handed to the sink per box.
// Values above MaxPreviewLimit are clamped to it.
func WithPreviewLimit(n int) WalkOption {
	return func(c *walkConfig) {
		if n >= 0 {
			c.previewLimit = min(n, MaxPreviewLimit)
		}
	}
}

// WithMaxDepth limits the number of open levels, the top level included.
func WithMaxDepth(n int) WalkOption {
	return func(c *walkConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithContainers replaces the set of box types that are descended into.
func WithContainers(tags ...Tag) WalkOption {
	return func(c *walkConfig) {
		c.containers = make(map[Tag]bool, len(tags))
		for _, tag := range tags {
			c.containers[tag] = true
		}
	}
}

func WithDecoder(d PayloadDecoder) WalkOption {
	return func(c *walkConfig) {
		c.decoder = d
	}
}

type walkFrame struct {
	end int64
}

// Walk visits every box between the current position of r and end, descending into
// containers. Each box is followed by a seek to exactly its declared end, so a sink or
// decoder never influences where the next box is read. A box with size 0 runs to the end
// of its parent and is the last box of its level.
func Walk(r io.ReadSeeker, end int64, sink BoxSink, opts ...WalkOption) error {
	cfg := walkConfig{previewLimit: DefaultPreviewLimit, maxDepth: DefaultMaxDepth}
	WithContainers(DefaultContainers...)(&cfg)
	for _, opt := range opts {
		opt(&cfg)
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return utils.NewIOError("seek", 0, err)
	}
	if pos > end {
		return &utils.MalformedBoxError{Offset: pos, Reason: fmt.Sprintf("walk starts past end %d", end)}
	}

	var buf []byte
	stack := []walkFrame{{end: end}}
	last := int64(-1)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		depth := len(stack) - 1

		if pos >= top.end {
			stack = stack[:len(stack)-1]
			if err = sink.EndLevel(depth); err != nil {
				return err
			}
			pos = top.end
			continue
		}
		if pos <= last {
			return &utils.MalformedBoxError{Offset: pos, Reason: fmt.Sprintf("position did not advance past %d", last)}
		}
		last = pos

		if _, err = r.Seek(pos, io.SeekStart); err != nil {
			return utils.NewIOError("seek", pos, err)
		}
		var hdr BoxHeader
		if hdr, err = ReadBoxHeader(io.LimitReader(r, top.end-pos), pos); err != nil {
			return err
		}

		headerEnd := pos + int64(hdr.HeaderLen)
		var bodySize uint64
		if hdr.ExtendsToEnd() {
			bodySize = uint64(top.end - headerEnd)
		} else {
			if hdr.Size > uint64(top.end-pos) {
				return &utils.MalformedBoxError{
					Type:   hdr.Type.String(),
					Offset: pos,
					Reason: fmt.Sprintf("size %d overruns parent ending at %d", hdr.Size, top.end),
				}
			}
			bodySize = hdr.BodySize()
		}
		next := headerEnd + int64(bodySize)

		preview := &BoxPreview{
			Header:    hdr,
			Depth:     depth,
			Container: cfg.containers[hdr.Type],
			BodySize:  bodySize,
		}
		n := bodySize
		if n > uint64(cfg.previewLimit) {
			n = uint64(cfg.previewLimit)
			preview.Truncated = true
		}
		if uint64(cap(buf)) < n {
			buf = make([]byte, n)
		}
		if _, err = io.ReadFull(r, buf[:n]); err != nil {
			return utils.NewIOError("read box body", headerEnd, err)
		}
		preview.Body = buf[:n]

		if cfg.decoder != nil && !preview.Container {
			if _, err = r.Seek(headerEnd, io.SeekStart); err != nil {
				return utils.NewIOError("seek", headerEnd, err)
			}
			decoded, ok, decodeErr := cfg.decoder.Decode(r, hdr, bodySize)
			switch {
			case decodeErr != nil:
				preview.Decoded = "decode error: " + decodeErr.Error()
			case ok:
				preview.Decoded = decoded
			}
		}

		if err = sink.Box(preview); err != nil {
			return err
		}

		if preview.Container {
			if len(stack) >= cfg.maxDepth {
				return &utils.MalformedBoxError{
					Type:   hdr.Type.String(),
					Offset: pos,
					Reason: fmt.Sprintf("nesting deeper than %d", cfg.maxDepth),
				}
			}
			stack = append(stack, walkFrame{end: next})
			pos = headerEnd
			continue
		}
		pos = next
	}
	if _, err = r.Seek(end, io.SeekStart); err != nil {
		return utils.NewIOError("seek", end, err)
	}
	return nil
}
