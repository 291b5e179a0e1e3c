package lanegrep

import (
	"errors"
	"fmt"
)

var (
	// ErrPatternSentinel is returned when the pattern contains a NUL
	// byte. Buffers are null-terminated on device, so a NUL inside the
	// pattern can never be part of a match.
	ErrPatternSentinel = errors.New("pattern contains a NUL byte")

	// ErrEngineClosed is returned by Search after Close.
	ErrEngineClosed = errors.New("engine is closed")
)

// ErrCompile indicates the backend failed to compile the kernel program or
// build its pipeline. It is fatal: no dispatch is attempted afterwards.
//
// The backend's descriptive error is accessible via errors.Unwrap.
type ErrCompile struct {
	Device string
	cause  error
}

func (e *ErrCompile) Error() string {
	return fmt.Sprintf("compile kernel on %q backend: %v", e.Device, e.cause)
}

func (e *ErrCompile) Unwrap() error { return e.cause }
