// ColorStdoutWriter prints human-friendly, colorized records to STDOUT.
package record

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints rows using ANSI colors. When STDOUT is not a
// terminal the colors are suppressed.
type ColorStdoutWriter struct {
	out   io.Writer
	color bool
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (w *ColorStdoutWriter) paint(color, s string) string {
	if !w.color {
		return s
	}
	return color + s + colorReset
}

// WriteStep prints a single step row.
func (w *ColorStdoutWriter) WriteStep(row StepRow) error {
	phase := "?"
	if row.Phase != PhaseUnknown {
		phase = fmt.Sprintf("%d", row.Phase)
	}
	ai := w.paint(colorGray, "ai=off")
	if row.AIEnabled {
		ai = w.paint(colorGreen, "ai=on")
	}
	_, err := fmt.Fprintf(w.out, "%s %s %s %s %s %s %s\n",
		w.paint(colorGray, "["+row.Timestamp.Format(time.RFC3339)+"]"),
		w.paint(colorBlue, "map="+row.MapID),
		w.paint(colorCyan, "session="+row.SessionID),
		w.paint(colorGreen, fmt.Sprintf("we=%d", row.VehiclesWE)),
		w.paint(colorYellow, fmt.Sprintf("ns=%d", row.VehiclesNS)),
		w.paint(colorMagenta, "phase="+phase),
		ai,
	)
	return err
}

// WriteBenchmark prints a single benchmark row.
func (w *ColorStdoutWriter) WriteBenchmark(row BenchmarkRow) error {
	kind := w.paint(colorYellow, "kind="+row.Kind)
	if row.AIMode {
		kind = w.paint(colorGreen, "kind="+row.Kind)
	}
	_, err := fmt.Fprintf(w.out, "%s %s %s %s travel=%.2f wait=%.2f completed=%d ev_wait=%.2f\n",
		w.paint(colorGray, "["+row.Timestamp.Format(time.RFC3339)+"]"),
		w.paint(colorRed, "BENCH"),
		w.paint(colorBlue, "run="+row.RunID),
		kind,
		row.AvgTravelTime, row.AvgWaitingTime, row.VehiclesCompleted, row.AvgEVWaitTime,
	)
	return err
}
