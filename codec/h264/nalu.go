package h264

import (
	"errors"
	"fmt"

	mch264 "github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/ugparu/mp4inspect/utils"
	"github.com/ugparu/mp4inspect/utils/nal"
)

// NalUnit is one length-prefixed NALU taken from a sample.
// Payload aliases the sample buffer and is only valid until the buffer is reused.
type NalUnit struct {
	Type    mch264.NALUType
	RefIdc  uint8
	Length  uint32
	Payload []byte
}

// IsSEI reports whether the unit carries supplemental enhancement information.
func (u NalUnit) IsSEI() bool {
	return u.Length > 0 && u.Type == mch264.NALUTypeSEI
}

func (u NalUnit) String() string {
	if u.Length == 0 {
		return "Empty"
	}
	return u.Type.String()
}

// NALExtractor pulls NAL units out of AVCC-framed samples.
type NALExtractor struct {
	lengthSize int
}

// NewNALExtractor returns an extractor for samples whose NALU length prefixes are lengthSize bytes wide.
func NewNALExtractor(lengthSize int) (*NALExtractor, error) {
	if !nal.ValidLengthSize(lengthSize) {
		return nil, fmt.Errorf("%w: got %d", ErrLengthSize, lengthSize)
	}
	return &NALExtractor{lengthSize: lengthSize}, nil
}

// NewNALExtractorFromRecord configures the prefix width from an avcC record.
func NewNALExtractorFromRecord(record *AVCDecoderConfRecord) (*NALExtractor, error) {
	return NewNALExtractor(record.LengthSize())
}

// LengthSize returns the configured prefix width.
func (ex *NALExtractor) LengthSize() int {
	return ex.lengthSize
}

// Extract classifies the first NALU of sample. Any bytes after it are ignored.
func (ex *NALExtractor) Extract(sample []byte) (unit NalUnit, err error) {
	payload, _, err := nal.Next(sample, ex.lengthSize)
	if err != nil {
		return unit, truncated(err, len(sample), ex.lengthSize)
	}
	return classify(payload)
}

// ExtractAll classifies every NALU of sample in order. Units decoded before a failure are
// returned together with the error.
func (ex *NALExtractor) ExtractAll(sample []byte) (units []NalUnit, err error) {
	payloads, splitErr := nal.SplitAVCC(sample, ex.lengthSize)
	for _, payload := range payloads {
		var unit NalUnit
		if unit, err = classify(payload); err != nil {
			return
		}
		units = append(units, unit)
	}
	if splitErr != nil {
		err = truncated(splitErr, len(sample), ex.lengthSize)
	}
	return
}

func truncated(err error, sampleLen, lengthSize int) error {
	reason := err.Error()
	switch {
	case errors.Is(err, nal.ErrShortPrefix):
		reason = fmt.Sprintf("%d bytes left for a %d-byte length prefix", sampleLen, lengthSize)
	case errors.Is(err, nal.ErrShortPayload):
		reason = "declared length runs past the end of the sample"
	}
	return &utils.NALError{Kind: utils.ErrTruncatedNal, Reason: reason}
}

func incomplete(reason string) error {
	return &utils.NALError{Kind: utils.ErrIncompleteNal, Reason: reason}
}

func classify(payload []byte) (unit NalUnit, err error) {
	unit.Length = uint32(len(payload)) //nolint:gosec // bounded by a 32-bit length prefix
	unit.Payload = payload
	if len(payload) == 0 {
		return
	}

	header := payload[0]
	unit.Type = mch264.NALUType(header & maskNalUnitType)
	unit.RefIdc = (header & maskNalRefIdc) >> shiftNalRefIdc

	if header&maskForbiddenZeroBit != 0 {
		err = incomplete("forbidden_zero_bit is set")
		return
	}
	if nal.HasStartCode(payload) {
		err = incomplete("start code inside payload")
		return
	}

	switch unit.Type {
	case mch264.NALUTypeEndOfSequence, mch264.NALUTypeEndOfStream:
		// empty RBSP
		return
	}

	rbsp := mch264.EmulationPreventionRemove(payload[1:])
	end := len(rbsp)
	for end > 0 && rbsp[end-1] == 0 {
		end--
	}
	if end == 0 {
		err = incomplete(fmt.Sprintf("%v unit has no rbsp_stop_one_bit", unit.Type))
	}
	return
}
