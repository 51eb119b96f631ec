package rawbuf

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with rawbuf-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// WithElemType adds an element type field to the logger.
func (l *Logger) WithElemType(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("elem_type", name),
	}
}

// LogAllocate logs a buffer allocation.
func (l *Logger) LogAllocate(layout Layout, err error) {
	if err != nil {
		l.Error("allocation failed",
			"bytes", layout.Size,
			"align", layout.Align,
			"error", err,
		)
	} else {
		l.Debug("buffer allocated",
			"bytes", layout.Size,
			"align", layout.Align,
		)
	}
}

// LogRelease logs a buffer release. leaked marks releases performed by the
// garbage collector cleanup because Close was never called.
func (l *Logger) LogRelease(layout Layout, leaked bool, err error) {
	switch {
	case err != nil:
		l.Error("release failed",
			"bytes", layout.Size,
			"error", err,
		)
	case leaked:
		l.Warn("buffer released by cleanup without Close",
			"bytes", layout.Size,
		)
	default:
		l.Debug("buffer released",
			"bytes", layout.Size,
		)
	}
}

// LogAccess logs a rejected read or write.
func (l *Logger) LogAccess(op string, offset, length int, err error) {
	l.Error(op+" rejected",
		"offset", offset,
		"length", length,
		"error", err,
	)
}
