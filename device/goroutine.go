package device

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lanegrep/grid"
)

// Goroutine executes kernel lanes on the host, scheduling them across a
// bounded set of worker goroutines. It is always available and serves as
// the reference backend for kernel semantics.
//
// "Compilation" on this backend resolves the source's entry point against
// the registered host kernels; unknown entry points fail descriptively, the
// same way a real backend surfaces a shader compile error.
type Goroutine struct {
	workers int
	closed  atomic.Bool
}

// NewGoroutine creates a goroutine-lane device with the given worker
// count. A count below 1 defaults to runtime.GOMAXPROCS(0).
func NewGoroutine(workers int) *Goroutine {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Goroutine{workers: workers}
}

// Default returns the device used when a caller does not configure one.
func Default() Device {
	return NewGoroutine(0)
}

// Compile resolves the entry point declared in source to its registered
// host implementation.
func (d *Goroutine) Compile(source string) (Pipeline, error) {
	if d.closed.Load() {
		return nil, ErrDeviceClosed
	}

	entry, err := parseEntryPoint(source)
	if err != nil {
		return nil, fmt.Errorf("compile kernel: %w", err)
	}

	fn, ok := lookupKernel(entry)
	if !ok {
		return nil, fmt.Errorf("compile kernel %q: %w", entry, ErrUnknownKernel)
	}

	return &goroutinePipeline{
		device:  d,
		entry:   entry,
		fn:      fn,
		workers: d.workers,
	}, nil
}

// Name returns "goroutine".
func (d *Goroutine) Name() string { return "goroutine" }

// Close marks the device closed. Pipelines compiled from it stop accepting
// dispatches.
func (d *Goroutine) Close() error {
	d.closed.Store(true)
	return nil
}

var _ Device = (*Goroutine)(nil)

type goroutinePipeline struct {
	device  *Goroutine
	entry   string
	fn      KernelFunc
	workers int
}

func (p *goroutinePipeline) EntryPoint() string { return p.entry }

// Dispatch runs every lane of g exactly once and blocks until all have
// finished. Lanes are batched into contiguous chunks, one in-flight chunk
// per worker, so launching millions of logical lanes does not mean
// millions of goroutines.
func (p *goroutinePipeline) Dispatch(ctx context.Context, g grid.Grid, b *Bindings) error {
	if p.device.closed.Load() {
		return ErrDeviceClosed
	}
	if g.Empty() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	chunk := (g.Lanes + p.workers - 1) / p.workers

	eg := new(errgroup.Group)
	eg.SetLimit(p.workers)

	for start := 0; start < g.Lanes; start += chunk {
		end := start + chunk
		if end > g.Lanes {
			end = g.Lanes
		}
		start, end := start, end
		eg.Go(func() error {
			for lane := start; lane < end; lane++ {
				p.fn(lane, g, b)
			}
			return nil
		})
	}

	return eg.Wait()
}

var _ Pipeline = (*goroutinePipeline)(nil)
