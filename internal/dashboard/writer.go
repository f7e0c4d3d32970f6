// Package dashboard renders the live session view using a bubbletea TUI.
package dashboard

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trafficdash/internal/config"
	"trafficdash/internal/controller"
	"trafficdash/internal/record"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stepMsg carries a poll result log line and its row data.
type stepMsg struct {
	line string
	row  record.StepRow
}

// benchMsg carries a completed benchmark run.
type benchMsg struct {
	line string
	row  record.BenchmarkRow
}

type setControllerMsg struct{ ctrl *controller.Controller }

// TUIWriter feeds step and benchmark rows into the dashboard program.
// It implements record.StepWriter and record.BenchmarkWriter so the
// controller can treat the TUI like any other sink.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.Config) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// SetController wires the controller the key handlers act on.
func (w *TUIWriter) SetController(ctrl *controller.Controller) {
	w.program.Send(setControllerMsg{ctrl: ctrl})
}

// WriteStep implements record.StepWriter.
func (w *TUIWriter) WriteStep(row record.StepRow) error {
	ai := colorRed + "off" + colorReset
	if row.AIEnabled {
		ai = colorGreen + "on" + colorReset
	}
	phase := "-"
	if row.Phase != record.PhaseUnknown {
		phase = fmt.Sprintf("%d", row.Phase)
	}
	line := fmt.Sprintf("%s[%s]%s %smap=%s%s %swe=%d%s %sns=%d%s %sphase=%s%s ai=%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.MapID, colorReset,
		colorGreen, row.VehiclesWE, colorReset,
		colorYellow, row.VehiclesNS, colorReset,
		colorMagenta, phase, colorReset,
		ai,
	)
	w.program.Send(stepMsg{line: line, row: row})
	return nil
}

// WriteSteps outputs multiple step rows.
func (w *TUIWriter) WriteSteps(rows []record.StepRow) error {
	for _, r := range rows {
		_ = w.WriteStep(r)
	}
	return nil
}

// WriteBenchmark implements record.BenchmarkWriter.
func (w *TUIWriter) WriteBenchmark(row record.BenchmarkRow) error {
	line := fmt.Sprintf("%s[%s]%s %sBENCH%s %srun=%s%s %stravel=%.2f%s %swait=%.2f%s %sdone=%d%s %sev_wait=%.2f%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset,
		colorBlue, row.RunID, colorReset,
		colorGreen, row.AvgTravelTime, colorReset,
		colorYellow, row.AvgWaitingTime, colorReset,
		colorMagenta, row.VehiclesCompleted, colorReset,
		colorCyan, row.AvgEVWaitTime, colorReset,
	)
	w.program.Send(benchMsg{line: line, row: row})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}
