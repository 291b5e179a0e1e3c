package lanegrep

import (
	"github.com/hupe1980/lanegrep/device"
)

// DefaultMaxMatches is the result buffer capacity used when no option
// overrides it. Matches past this bound are still counted, but their
// positions are dropped.
const DefaultMaxMatches = 1000

type options struct {
	maxMatches int
	stride     int
	device     device.Device
	logger     *Logger
}

// Option configures Engine construction.
type Option func(*options)

// WithMaxMatches sets the result buffer capacity. The buffer is
// deliberately bounded; overflow is reported, never grown. Values below 1
// keep DefaultMaxMatches.
func WithMaxMatches(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxMatches = n
		}
	}
}

// WithStride sets how many consecutive starting offsets each lane scans.
// The default of 1 (one offset per lane) is the unconditionally correct
// policy; larger strides trade lane count for per-lane work and are purely
// a throughput knob — the kernel loops over its whole block either way.
// Values below 1 are treated as 1.
func WithStride(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.stride = n
		}
	}
}

// WithDevice sets the compute backend. The engine takes ownership and
// closes it on Engine.Close. If nil, device.Default() is used.
func WithDevice(d device.Device) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithLogger sets the diagnostic logger. If nil, a warn-level text logger
// on stderr is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
