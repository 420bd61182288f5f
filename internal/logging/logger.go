// Package logging provides structured logging for placesync using slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level aliases for convenience.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	defaultLogger *slog.Logger
	defaultOnce   sync.Once
)

// Options configures the logger behavior.
type Options struct {
	// Level sets the minimum log level. Defaults to LevelWarn so a
	// normal run prints nothing beyond the status lines.
	Level slog.Level
	// Output sets the output destination. Defaults to os.Stderr.
	Output io.Writer
	// AddSource includes source file and line in log output.
	AddSource bool
}

// DefaultOptions returns options suitable for CLI usage.
func DefaultOptions() Options {
	return Options{
		Level:  LevelWarn,
		Output: os.Stderr,
	}
}

// New creates a new logger with the given options.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handler := slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	})
	return slog.New(handler)
}

// Default returns the default logger, creating it if necessary.
func Default() *slog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(DefaultOptions())
	})
	return defaultLogger
}

// SetDefault sets the default logger and also sets it as slog's default.
func SetDefault(logger *slog.Logger) {
	// Trigger the once so Default() won't overwrite the logger
	defaultOnce.Do(func() {})
	defaultLogger = logger
	slog.SetDefault(logger)
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// Common attribute keys for consistent logging across the codebase.
const (
	// KeyBackend identifies the bookmark store backend (gtk, kde, qt).
	KeyBackend = "backend"
	// KeyPath identifies a file path.
	KeyPath = "path"
	// KeyCount provides a count of items or bytes.
	KeyCount = "count"
	// KeyError attaches an error value.
	KeyError = "error"
)

// Backend returns a slog attribute for backend logging.
func Backend(b string) slog.Attr {
	return slog.String(KeyBackend, b)
}

// Path returns a slog attribute for file path logging.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Count returns a slog attribute for item counts.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns a slog attribute for error logging.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}
