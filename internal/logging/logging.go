package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger configured with a text handler writing to STDOUT.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// NewWriter returns a logger writing to w. The TUI owns STDOUT while it
// runs, so interactive commands log elsewhere.
func NewWriter(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithComponent tags every record of l with the given component name.
func WithComponent(l *slog.Logger, name string) *slog.Logger {
	return l.With("component", name)
}
