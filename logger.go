package lanegrep

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lanegrep-specific helpers. Diagnostic
// only: the search summary, report lines, and overflow warning are written
// to the output streams directly, never through the logger.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler falls
// back to a text handler on stderr at warn level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable text to stderr at
// the given minimum level.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))}
}

// WithDevice adds the backend name to the logger.
func (l *Logger) WithDevice(name string) *Logger {
	return &Logger{Logger: l.Logger.With("device", name)}
}
