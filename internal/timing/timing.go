// Package timing wraps function calls with elapsed-time instrumentation.
package timing

import (
	"log/slog"
	"time"
)

// Timed runs fn and logs its wall-clock duration, returning fn's results
// unchanged.
//
// The start of the call is logged at debug level and the elapsed time at
// info level. The duration is reported on every return path, including when
// fn returns an error. Timing is purely observational: Timed never alters
// the value or error it passes through.
func Timed[T any](logger *slog.Logger, name string, fn func() (T, error)) (T, error) {
	logger.Debug("starting timed operation", "operation", name)

	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	logger.Info("timed operation finished",
		"operation", name,
		"duration", elapsed,
		"failed", err != nil)

	return result, err
}
