// Package device abstracts the parallel compute backend that executes the
// matching kernel.
//
// A Device compiles textual kernel source into an executable Pipeline; one
// Pipeline.Dispatch call submits a single launch across a lane grid and
// blocks until every lane has finished. The package ships a goroutine-lane
// device that schedules lanes across a bounded set of host workers, which
// keeps the kernel's semantics exercisable everywhere a real accelerator is
// not.
package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/lanegrep/collector"
	"github.com/hupe1980/lanegrep/grid"
)

var (
	// ErrUnknownKernel is returned by Compile when the source's entry
	// point has no registered host implementation.
	ErrUnknownKernel = errors.New("unknown kernel entry point")

	// ErrNoEntryPoint is returned by Compile when no kernel entry point
	// can be located in the source text.
	ErrNoEntryPoint = errors.New("no kernel entry point in source")

	// ErrDeviceClosed is returned when compiling on or dispatching to a
	// device that has been closed.
	ErrDeviceClosed = errors.New("device is closed")
)

// Bindings are the fixed argument slots a compiled kernel runs against.
// They mirror the launch's buffer bindings: the text and pattern are
// read-only for the duration of a dispatch, and Out is the only shared
// mutable state, guarded by its own atomic claim protocol.
type Bindings struct {
	// Text is the haystack. Accelerator backends append a 0x00 sentinel
	// at upload so the program can rediscover lengths on-device; host
	// kernels bound every access by TextLen instead.
	Text []byte

	// Pattern is the needle, under the same sentinel convention.
	Pattern []byte

	// TextLen and PatternLen are the searchable lengths, excluding any
	// sentinel.
	TextLen    int
	PatternLen int

	// Out receives match positions from lanes that found the pattern.
	Out *collector.Collector
}

// KernelFunc is the host-executable form of one lane's work. It is invoked
// once per lane and must confine itself to the offsets the grid assigns to
// that lane.
type KernelFunc func(lane int, g grid.Grid, b *Bindings)

// Pipeline is a compiled kernel ready to launch.
type Pipeline interface {
	// Dispatch submits one launch across g and returns only after every
	// lane has completed. Dispatch does not poll ctx once lanes are
	// running; a submitted launch always runs to completion.
	Dispatch(ctx context.Context, g grid.Grid, b *Bindings) error

	// EntryPoint returns the kernel function name this pipeline executes.
	EntryPoint() string
}

// Device compiles kernel source text into an executable pipeline.
//
// Implementations:
//   - Goroutine: lanes scheduled across host worker goroutines
type Device interface {
	// Compile builds an executable pipeline from kernel source text.
	// Failure is fatal to the search that requested it; callers must not
	// dispatch after a compile error.
	Compile(source string) (Pipeline, error)

	// Name identifies the backend, e.g. "goroutine".
	Name() string

	// Close releases backend resources. The device is unusable afterwards.
	Close() error
}

// parseEntryPoint extracts the first kernel entry point name from source.
// It understands the `kernel void <name>(` declaration form used by the
// shipped program assets.
func parseEntryPoint(source string) (string, error) {
	const marker = "kernel void "

	for i := 0; i+len(marker) <= len(source); i++ {
		if source[i:i+len(marker)] != marker {
			continue
		}
		j := i + len(marker)
		k := j
		for k < len(source) && isIdentByte(source[k]) {
			k++
		}
		if k == j || k >= len(source) || source[k] != '(' {
			return "", fmt.Errorf("%w: malformed declaration at byte %d", ErrNoEntryPoint, i)
		}
		return source[j:k], nil
	}

	return "", ErrNoEntryPoint
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
