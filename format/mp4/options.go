package mp4

import "github.com/ugparu/mp4inspect/format/mp4/mp4io"

type config struct {
	previewLimit int
	maxDepth     int
	allNALUs     bool
	strict       bool
	decode       bool
	decodeLimit  uint64
	maxFailures  int
}

// DefaultMaxFailures is the number of NALU errors a Report keeps by default.
const DefaultMaxFailures = 16

func defaultConfig() config {
	return config{
		previewLimit: mp4io.DefaultPreviewLimit,
		maxDepth:     mp4io.DefaultMaxDepth,
		decodeLimit:  defaultDecodeLimit,
		maxFailures:  DefaultMaxFailures,
	}
}

// Option configures an Inspector.
type Option func(*config)

// WithPreviewLimit sets how many body bytes of each box are dumped.
func WithPreviewLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.previewLimit = n
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithAllNALUs classifies every NALU of a sample instead of only the first one.
func WithAllNALUs(all bool) Option {
	return func(c *config) {
		c.allNALUs = all
	}
}

// WithStrict makes NALU errors abort the scan instead of being counted.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithDecode adds a decoded rendering of supported leaf boxes no larger than limit bytes
// to the box dump. A zero limit keeps the default.
func WithDecode(decode bool, limit uint64) Option {
	return func(c *config) {
		c.decode = decode
		if limit > 0 {
			c.decodeLimit = limit
		}
	}
}

// WithMaxFailures bounds the number of NALU errors kept in Report.Failures.
// Report.Failed still counts every one of them.
func WithMaxFailures(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxFailures = n
		}
	}
}
