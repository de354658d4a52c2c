// Package log provides a structured logging interface for classiFunc operations.
//
// This package defines a minimal, slog-compatible logging interface that allows for
// flexible implementation switching while providing structured logging for the
// functional-data classification workflow (fit, transform, predict). The interface
// integrates with Go's standard log/slog package and plays well with zerolog-style
// structured error types via the error attribute handler in handler.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("neighbors").With(
//	    log.ModelNameKey, "KNNClassifier",
//	)
//	logger.Info("fit completed",
//	    log.OperationKey, "fit",
//	    log.SamplesKey, 120,
//	    log.GridPointsKey, 50,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Data-quality warnings (missing values, uneven grids) are reported here.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is passed via ErrAttr, stack trace information from
	// cockroachdb/errors is extracted automatically.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
