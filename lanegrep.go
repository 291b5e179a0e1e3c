package lanegrep

import (
	"bytes"
	"context"
	"sync/atomic"

	"github.com/hupe1980/lanegrep/collector"
	"github.com/hupe1980/lanegrep/device"
	"github.com/hupe1980/lanegrep/grid"
	"github.com/hupe1980/lanegrep/kernel"
)

// Engine is the host dispatch coordinator. It owns the compiled kernel
// pipeline and the backend device; result buffers are allocated fresh per
// search, so one Engine may serve concurrent Search calls.
type Engine struct {
	dev        device.Device
	pipeline   device.Pipeline
	logger     *Logger
	maxMatches int
	stride     int
	closed     atomic.Bool
}

// Result is the raw outcome of one search, before line mapping.
type Result struct {
	// Positions are the retained match byte-offsets, in slot-claim order.
	// At most Capacity entries.
	Positions []int64

	// Total is the true match count, which exceeds len(Positions) when
	// the result buffer overflowed.
	Total int64

	// Capacity is the result buffer size in effect for this search.
	Capacity int
}

// Truncated reports whether match positions were dropped for lack of
// buffer space.
func (r *Result) Truncated() bool {
	return r.Total > int64(len(r.Positions))
}

// New constructs an Engine, compiling the matching program on the
// configured backend. A compile or pipeline-construction failure is fatal:
// New returns an *ErrCompile and nothing will ever be dispatched.
func New(opts ...Option) (*Engine, error) {
	o := options{
		maxMatches: DefaultMaxMatches,
		stride:     1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.device == nil {
		o.device = device.Default()
	}
	if o.logger == nil {
		o.logger = NewLogger(nil)
	}

	pipe, err := o.device.Compile(kernel.Match.Source)
	if err != nil {
		_ = o.device.Close()
		return nil, &ErrCompile{Device: o.device.Name(), cause: err}
	}

	o.logger.Debug("kernel compiled",
		"device", o.device.Name(),
		"entry", pipe.EntryPoint(),
		"version", kernel.Match.Version,
	)

	return &Engine{
		dev:        o.device,
		pipeline:   pipe,
		logger:     o.logger.WithDevice(o.device.Name()),
		maxMatches: o.maxMatches,
		stride:     o.stride,
	}, nil
}

// Search finds every occurrence of pattern in text and returns the
// retained match positions together with the true match count.
//
// Text and pattern are read-only for the duration of the call. A pattern
// containing a NUL byte is rejected with ErrPatternSentinel; text is
// truncated at its first NUL, since that is where the device's
// null-terminated view of the buffer ends.
//
// An empty pattern, empty text, or pattern longer than the text yields
// zero matches without dispatching any lanes. Otherwise Search submits
// exactly one launch and blocks until every lane has completed; partial
// results are never exposed.
func (e *Engine) Search(ctx context.Context, text, pattern []byte) (*Result, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if bytes.IndexByte(pattern, 0) >= 0 {
		return nil, ErrPatternSentinel
	}
	if i := bytes.IndexByte(text, 0); i >= 0 {
		e.logger.Warn("text contains NUL, truncating", "offset", i, "len", len(text))
		text = text[:i]
	}

	out := collector.New(e.maxMatches)

	g := grid.Plan(len(text), len(pattern), e.stride)
	if g.Empty() {
		return &Result{Positions: out.Positions(), Capacity: out.Capacity()}, nil
	}

	b := &device.Bindings{
		Text:       text,
		Pattern:    pattern,
		TextLen:    len(text),
		PatternLen: len(pattern),
		Out:        out,
	}

	e.logger.Debug("dispatching",
		"lanes", g.Lanes,
		"stride", g.Stride,
		"text_len", len(text),
		"pattern_len", len(pattern),
	)

	if err := e.pipeline.Dispatch(ctx, g, b); err != nil {
		return nil, err
	}

	res := &Result{
		Positions: out.Positions(),
		Total:     out.Total(),
		Capacity:  out.Capacity(),
	}
	if res.Truncated() {
		e.logger.Warn("result buffer overflow",
			"total", res.Total,
			"retained", len(res.Positions),
		)
	}
	return res, nil
}

// Close releases the backend device. The engine is unusable afterwards.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.dev.Close()
}

// Search is a one-shot convenience: construct an engine, run a single
// search, and release the backend.
func Search(ctx context.Context, text, pattern []byte, opts ...Option) (*Result, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	return e.Search(ctx, text, pattern)
}
