// Package logging builds the slog handler used by the command-line tools.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewTerminalHandler creates a slog handler for human-facing terminal output.
//
// Output is colorized via tint when w is an interactive terminal and falls
// back to plain text when it is redirected to a file or pipe, so logs stay
// grep-friendly in scripts while remaining readable during development.
func NewTerminalHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
}

// isTerminal reports whether w is attached to an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
