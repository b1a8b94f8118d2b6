// Package mp4 inspects ISO-BMFF files: it dumps the box tree and classifies the leading
// H.264 NAL unit of every sample of the single video track.
package mp4

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ugparu/mp4inspect/codec/h264"
	"github.com/ugparu/mp4inspect/format/mp4/mp4io"
	"github.com/ugparu/mp4inspect/utils"
	"github.com/ugparu/mp4inspect/utils/buffer"
	"github.com/ugparu/mp4inspect/utils/logger"
)

// Report summarizes one Inspect run.
type Report struct {
	Samples       int
	Classified    int
	SuppressedSEI int
	Failed        int
	Types         map[string]int // classified units per NALU type name
	Failures      []error // the first failures, see WithMaxFailures
}

func (r Report) String() string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "samples=%d classified=%d sei=%d failed=%d", r.Samples, r.Classified, r.SuppressedSEI, r.Failed)
	for _, name := range slices.Sorted(maps.Keys(r.Types)) {
		fmt.Fprintf(sb, " %s=%d", name, r.Types[name])
	}
	return sb.String()
}

type Inspector struct {
	path string
	cfg  config

	f *os.File
	r *fileReader

	movie   *mp4io.Movie
	track   *mp4io.Track
	record  *h264.AVCDecoderConfRecord
	nalex   *h264.NALExtractor
	samples *SampleIterator
	buf     buffer.PooledBuffer
}

// NewInspector opens path for reading. Nothing is parsed until DumpBoxes or Inspect is called.
func NewInspector(path string, opts ...Option) (*Inspector, error) {
	insp := &Inspector{path: path, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&insp.cfg)
	}

	var err error
	if insp.f, err = os.Open(path); err != nil {
		return nil, utils.NewIOError("open "+path, 0, err)
	}
	if insp.r, err = newFileReader(insp.f); err != nil {
		_ = insp.f.Close()
		return nil, utils.NewIOError("stat "+path, 0, err)
	}
	logger.Debugf(insp, "Opened %s, %d bytes", path, insp.r.Size())
	return insp, nil
}

func (insp *Inspector) String() string {
	return "INSPECTOR " + filepath.Base(insp.path)
}

// Close releases the file and the sample buffer.
func (insp *Inspector) Close() error {
	if insp.buf != nil {
		insp.buf.Release()
		insp.buf = nil
	}
	if insp.f == nil {
		return nil
	}
	err := insp.f.Close()
	insp.f = nil
	return err
}

// DumpBoxes writes the box tree of the whole file to w.
func (insp *Inspector) DumpBoxes(w io.Writer) error {
	if _, err := insp.r.Seek(0, io.SeekStart); err != nil {
		return utils.NewIOError("seek", 0, err)
	}
	opts := []mp4io.WalkOption{
		mp4io.WithPreviewLimit(insp.cfg.previewLimit),
		mp4io.WithMaxDepth(insp.cfg.maxDepth),
	}
	if insp.cfg.decode {
		opts = append(opts, mp4io.WithDecoder(payloadDecoder{limit: insp.cfg.decodeLimit}))
	}
	return mp4io.Walk(insp.r, insp.r.Size(), &textSink{w: w}, opts...)
}

// probe decodes moov once and prepares the extractor and sample iterator of the video track.
func (insp *Inspector) probe() (err error) {
	if insp.samples != nil {
		return
	}

	if _, err = insp.r.Seek(0, io.SeekStart); err != nil {
		return utils.NewIOError("seek", 0, err)
	}
	var atoms []mp4io.Atom
	if atoms, err = mp4io.ReadFileAtoms(insp.r); err != nil {
		return
	}
	if insp.movie, err = mp4io.FindMovie(atoms); err != nil {
		return &utils.MalformedBoxError{Type: "moov", Reason: err.Error()}
	}

	video := insp.movie.VideoTracks()
	if len(video) != 1 {
		return fmt.Errorf("%w: file has %d video tracks, exactly one is required", utils.ErrUnsupported, len(video))
	}
	insp.track = video[0]

	conf := insp.track.GetAVC1Conf()
	if conf == nil {
		return fmt.Errorf("%w: video track is not H.264 (no avc1/avcC)", utils.ErrUnsupported)
	}
	insp.record = &h264.AVCDecoderConfRecord{}
	if _, err = insp.record.Unmarshal(conf.Data); err != nil {
		offset, _ := conf.Pos()
		return &utils.MalformedBoxError{Type: "avcC", Offset: int64(offset), Reason: err.Error()}
	}
	if insp.nalex, err = h264.NewNALExtractorFromRecord(insp.record); err != nil {
		return
	}

	stbl := insp.track.SampleTable()
	if stbl == nil {
		return &utils.MalformedBoxError{Type: "stbl", Reason: "video track has no sample table"}
	}
	if insp.samples, err = NewSampleIterator(stbl.SampleToChunk, stbl.ChunkOffset, stbl.ChunkOffset64, stbl.SampleSize); err != nil {
		return
	}

	logger.Debugf(insp, "Video track: %d chunks, NALU length size %d, %d SPS, %d PPS",
		insp.samples.ChunkCount(), insp.nalex.LengthSize(), len(insp.record.SPS), len(insp.record.PPS))
	return
}

// readSample reads exactly the bytes of s into the reused sample buffer.
func (insp *Inspector) readSample(s ResolvedSample) ([]byte, error) {
	if s.End() > uint64(insp.r.Size()) {
		return nil, &utils.SampleTableError{
			SampleIndex: s.Index,
			ChunkIndex:  s.ChunkIndex,
			Reason:      fmt.Sprintf("sample [%d, %d) runs past end of file (%d bytes)", s.Offset, s.End(), insp.r.Size()),
		}
	}
	if insp.buf == nil {
		insp.buf = buffer.Get(int(s.Size))
	} else {
		insp.buf.Resize(int(s.Size))
	}
	if _, err := insp.r.Seek(int64(s.Offset), io.SeekStart); err != nil {
		return nil, utils.NewIOError("seek", int64(s.Offset), err)
	}
	if _, err := io.ReadFull(insp.r, insp.buf.Data()); err != nil {
		return nil, utils.NewIOError(fmt.Sprintf("read sample %d", s.Index), int64(s.Offset), err)
	}
	return insp.buf.Data(), nil
}

// Inspect walks the samples of the video track in decode order and writes one line per
// classified, non-SEI NALU to w. Box and sample table errors stop the scan; NALU errors are
// counted in the report unless the inspector is strict.
func (insp *Inspector) Inspect(w io.Writer) (report Report, err error) {
	report.Types = map[string]int{}
	if err = insp.probe(); err != nil {
		return
	}
	insp.samples.Reset()

	for {
		s, ok := insp.samples.Next()
		if !ok {
			break
		}
		report.Samples++

		var sample []byte
		if sample, err = insp.readSample(s); err != nil {
			return
		}

		var units []h264.NalUnit
		var nalErr error
		if insp.cfg.allNALUs {
			units, nalErr = insp.nalex.ExtractAll(sample)
		} else {
			var unit h264.NalUnit
			if unit, nalErr = insp.nalex.Extract(sample); nalErr == nil {
				units = []h264.NalUnit{unit}
			}
		}

		for i, unit := range units {
			if unit.IsSEI() {
				report.SuppressedSEI++
				continue
			}
			report.Classified++
			report.Types[unit.String()]++
			if insp.cfg.allNALUs {
				_, err = fmt.Fprintf(w, "Sample %03d: chunk %03d %d + %d: %s [%d/%d]\n",
					s.Index, s.ChunkIndex, s.Offset, s.Size, unit, i+1, len(units))
			} else {
				_, err = fmt.Fprintf(w, "Sample %03d: chunk %03d %d + %d: %s\n",
					s.Index, s.ChunkIndex, s.Offset, s.Size, unit)
			}
			if err != nil {
				return
			}
		}

		if nalErr != nil {
			nalErr = utils.Locate(nalErr, s.Index, s.Offset, s.Size)
			if insp.cfg.strict {
				err = nalErr
				return
			}
			report.Failed++
			if len(report.Failures) < insp.cfg.maxFailures {
				report.Failures = append(report.Failures, nalErr)
			}
			logger.Warning(insp, nalErr.Error())
		}
	}

	if err = insp.samples.Err(); err != nil {
		return
	}
	logger.Infof(insp, "Done: %v", report)
	return
}

// IsFatal reports whether err from Inspect ended the scan because the file structure itself is
// unusable, as opposed to a strict-mode NALU failure.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, utils.ErrTruncatedNal) && !errors.Is(err, utils.ErrIncompleteNal)
}
