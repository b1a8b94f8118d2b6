package mp4

import (
	"bufio"
	"errors"
	"io"
	"os"
)

const readBufferSize = 64 * 1024

var errNegativePosition = errors.New("mp4: seek to negative position")

// fileReader is a buffered io.ReadSeeker over an *os.File. A forward seek that lands inside
// the buffered window discards bytes instead of going to the file.
type fileReader struct {
	f    *os.File
	br   *bufio.Reader
	pos  int64
	size int64
}

func newFileReader(f *os.File) (*fileReader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &fileReader{
		f:    f,
		br:   bufio.NewReaderSize(f, readBufferSize),
		size: info.Size(),
	}, nil
}

func (r *fileReader) Read(p []byte) (n int, err error) {
	n, err = r.br.Read(p)
	r.pos += int64(n)
	return
}

func (r *fileReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.pos + offset
	case io.SeekEnd:
		abs = r.size + offset
	default:
		return r.pos, errors.New("mp4: invalid whence")
	}
	if abs < 0 {
		return r.pos, errNegativePosition
	}

	if d := abs - r.pos; d >= 0 && d <= int64(r.br.Buffered()) {
		n, _ := r.br.Discard(int(d))
		r.pos += int64(n)
		return r.pos, nil
	}
	if _, err := r.f.Seek(abs, io.SeekStart); err != nil {
		return r.pos, err
	}
	r.br.Reset(r.f)
	r.pos = abs
	return abs, nil
}

// Size is the file size at open time.
func (r *fileReader) Size() int64 {
	return r.size
}
