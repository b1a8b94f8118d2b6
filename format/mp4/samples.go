package mp4

import (
	"fmt"
	"math"

	"github.com/ugparu/mp4inspect/format/mp4/mp4io"
	"github.com/ugparu/mp4inspect/utils"
)

// ResolvedSample is the byte range of one sample in decode order. Index and ChunkIndex are 0-based.
type ResolvedSample struct {
	Index      uint32
	ChunkIndex uint32
	Offset     uint64
	Size       uint32
}

func (s ResolvedSample) End() uint64 {
	return s.Offset + uint64(s.Size)
}

// SampleIterator expands stsc runs against the chunk offset and sample size tables one sample
// at a time. It is restartable with Reset but holds no position beyond the current sample.
type SampleIterator struct {
	runs      []mp4io.SampleToChunkEntry
	offsets32 []uint32
	offsets64 []uint64
	constSize uint32
	sizes     []uint32
	limit     uint32 // number of sizes available; math.MaxUint32 when unbounded
	explicit  bool

	chunkCount         uint32
	chunkGroupIndex    int
	chunkIndex         uint32
	sampleIndexInChunk uint32
	sampleIndex        uint32
	offset             uint64

	done bool
	err  error
}

// NewSampleIterator validates the shape of the tables. Exactly one of stco and co64 must be
// non-nil. Inconsistencies that depend on the expansion itself are reported by Err once Next
// reaches them.
func NewSampleIterator(
	stsc *mp4io.SampleToChunk,
	stco *mp4io.ChunkOffset,
	co64 *mp4io.ChunkOffset64,
	stsz *mp4io.SampleSize,
) (*SampleIterator, error) {
	switch {
	case stco == nil && co64 == nil:
		return nil, &utils.MalformedBoxError{Type: "stbl", Reason: "neither stco nor co64 present"}
	case stco != nil && co64 != nil:
		return nil, &utils.MalformedBoxError{Type: "stbl", Offset: int64(stco.Offset), Reason: "both stco and co64 present"}
	case stsc == nil:
		return nil, &utils.MalformedBoxError{Type: "stbl", Reason: "stsc missing"}
	case stsz == nil:
		return nil, &utils.MalformedBoxError{Type: "stbl", Reason: "stsz missing"}
	}

	it := &SampleIterator{runs: stsc.Entries}
	if stco != nil {
		it.offsets32 = stco.Entries
		it.chunkCount = uint32(len(stco.Entries))
	} else {
		it.offsets64 = co64.Entries
		it.chunkCount = uint32(len(co64.Entries))
	}

	switch {
	case stsz.SampleSize != 0 && len(stsz.Entries) > 0:
		return nil, &utils.SampleTableError{
			Reason: fmt.Sprintf("constant sample size %d and %d explicit sizes both present", stsz.SampleSize, len(stsz.Entries)),
		}
	case stsz.SampleSize != 0:
		it.constSize = stsz.SampleSize
		it.limit = math.MaxUint32
		if stsz.SampleCount != 0 {
			it.limit = stsz.SampleCount
		}
	default:
		it.explicit = true
		it.sizes = stsz.Entries
		it.limit = uint32(len(stsz.Entries))
	}

	if it.chunkCount > 0 && len(it.runs) == 0 {
		return nil, &utils.SampleTableError{Reason: fmt.Sprintf("%d chunks but no stsc runs", it.chunkCount)}
	}
	for i, run := range it.runs {
		var reason string
		switch {
		case i == 0 && run.FirstChunk != 1:
			reason = fmt.Sprintf("first run starts at chunk %d, not 1", run.FirstChunk)
		case i > 0 && run.FirstChunk <= it.runs[i-1].FirstChunk:
			reason = fmt.Sprintf("run %d starts at chunk %d, not after %d", i, run.FirstChunk, it.runs[i-1].FirstChunk)
		case run.FirstChunk > it.chunkCount:
			reason = fmt.Sprintf("run %d starts at chunk %d of %d", i, run.FirstChunk, it.chunkCount)
		}
		if reason != "" {
			var chunk uint32
			if run.FirstChunk > 0 {
				chunk = run.FirstChunk - 1
			}
			return nil, &utils.SampleTableError{ChunkIndex: chunk, Reason: reason}
		}
	}

	it.Reset()
	return it, nil
}

// Reset rewinds the iterator to the first sample and clears any error.
func (it *SampleIterator) Reset() {
	it.chunkGroupIndex = 0
	it.chunkIndex = 0
	it.sampleIndexInChunk = 0
	it.sampleIndex = 0
	it.offset = 0
	it.done = false
	it.err = nil
	if it.chunkCount > 0 {
		it.offset = it.chunkOffset(0)
	}
}

// Err returns the error that stopped the iteration, if any.
func (it *SampleIterator) Err() error {
	return it.err
}

// ChunkCount returns the number of entries in the chunk offset table.
func (it *SampleIterator) ChunkCount() uint32 {
	return it.chunkCount
}

func (it *SampleIterator) chunkOffset(i uint32) uint64 {
	if it.offsets64 != nil {
		return it.offsets64[i]
	}
	return uint64(it.offsets32[i])
}

func (it *SampleIterator) fail(reason string, args ...any) {
	it.done = true
	it.err = &utils.SampleTableError{
		SampleIndex: it.sampleIndex,
		ChunkIndex:  it.chunkIndex,
		Reason:      fmt.Sprintf(reason, args...),
	}
}

// Next returns the next sample. It returns false at the end of the table or on error;
// the two are told apart with Err.
func (it *SampleIterator) Next() (s ResolvedSample, ok bool) {
	if it.done {
		return
	}

	for it.chunkIndex < it.chunkCount && it.sampleIndexInChunk == it.runs[it.chunkGroupIndex].SamplesPerChunk {
		it.chunkIndex++
		it.sampleIndexInChunk = 0
		if it.chunkIndex == it.chunkCount {
			break
		}
		it.offset = it.chunkOffset(it.chunkIndex)
		if it.chunkGroupIndex+1 < len(it.runs) && it.chunkIndex+1 == it.runs[it.chunkGroupIndex+1].FirstChunk {
			it.chunkGroupIndex++
		}
	}

	if it.chunkIndex >= it.chunkCount {
		it.done = true
		switch {
		case it.explicit && it.sampleIndex != it.limit:
			it.fail("%d explicit sample sizes left after the last chunk", it.limit-it.sampleIndex)
		case !it.explicit && it.limit != math.MaxUint32 && it.sampleIndex != it.limit:
			it.fail("stsz declares %d samples, chunks hold %d", it.limit, it.sampleIndex)
		}
		return
	}

	if it.sampleIndex >= it.limit {
		it.fail("sample size table holds only %d entries", it.limit)
		return
	}
	size := it.constSize
	if it.explicit {
		size = it.sizes[it.sampleIndex]
	}
	if it.offset > math.MaxUint64-uint64(size) {
		it.fail("sample at offset %d with size %d overflows", it.offset, size)
		return
	}

	s = ResolvedSample{
		Index:      it.sampleIndex,
		ChunkIndex: it.chunkIndex,
		Offset:     it.offset,
		Size:       size,
	}
	it.offset += uint64(size)
	it.sampleIndexInChunk++
	it.sampleIndex++
	return s, true
}
