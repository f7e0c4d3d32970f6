// Package report renders benchmark comparison results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trafficdash/internal/traffic"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	betterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	worseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	plainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render produces a human-readable comparison table for a completed
// benchmark pair. Output is plain text with ANSI colors when color is
// enabled.
func Render(res traffic.ComparisonResult, color bool) string {
	var b strings.Builder

	title := fmt.Sprintf("Benchmark Results: %s", res.MapID)
	b.WriteString(style(titleStyle, title, color))
	b.WriteByte('\n')

	header := fmt.Sprintf("%-24s %12s %12s %10s", "Metric", "Baseline", "With AI", "Change")
	b.WriteString(style(headerStyle, header, color))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", 62))
	b.WriteByte('\n')

	for _, m := range res.Metrics() {
		line := fmt.Sprintf("%-24s %12s %12s %10s",
			m.Name, formatValue(m.Name, m.Before), formatValue(m.Name, m.After), m.Change.String())
		b.WriteString(style(changeStyle(m), line, color))
		b.WriteByte('\n')
	}
	return b.String()
}

func changeStyle(m traffic.MetricDelta) lipgloss.Style {
	if !m.Change.Valid {
		return plainStyle
	}
	if m.Improved() {
		return betterStyle
	}
	if m.Change.Value == 0 {
		return plainStyle
	}
	return worseStyle
}

func formatValue(name string, v float64) string {
	if name == traffic.MetricVehiclesCompleted {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func style(s lipgloss.Style, text string, color bool) string {
	if !color {
		return text
	}
	return s.Render(text)
}

// RenderSummary formats a single run's metrics, used right after each
// benchmark run completes.
func RenderSummary(runID string, sum traffic.BenchmarkSummary) string {
	return fmt.Sprintf("%s: avg_travel=%.2fs avg_wait=%.2fs completed=%d ev_wait=%.2fs",
		runID, sum.AvgTravelTime, sum.AvgWaitingTime, sum.VehiclesCompleted, sum.AvgEVWaitTime)
}
