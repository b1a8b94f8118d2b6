package h264

import "errors"

// Common magic numbers used in the package
const (
	// avcC bit masks
	maskLengthSizeMinusOne    = 0x03
	maskSPSCount              = 0x1f
	maskLengthSizeMinusOneInv = 0xfc
	maskSPSCountInv           = 0xe0

	// NAL header bit masks
	maskForbiddenZeroBit = 0x80
	maskNalRefIdc        = 0x60
	maskNalUnitType      = 0x1f
	shiftNalRefIdc       = 5

	// Length field size in AVCDecoderConfRecord
	lengthFieldSize = 2

	// configurationVersion is the only avcC version defined by ISO/IEC 14496-15.
	configurationVersion = 1
)

var (
	ErrDecconfInvalid = errors.New("h264parser: AVCDecoderConfRecord invalid")
	ErrLengthSize     = errors.New("h264parser: NALU length size must be 1, 2, 3 or 4")
)
