package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"trafficdash/internal/config"
	"trafficdash/internal/controller"
	"trafficdash/internal/report"
	"trafficdash/internal/traffic"
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

const (
	maxLogLines   = 1000
	stateTickRate = 200 * time.Millisecond
)

// tickMsg refreshes the controller state projection.
type tickMsg struct{}

// actionMsg reports the outcome of a key-triggered controller call.
type actionMsg struct {
	line string
	err  error
}

type tuiModel struct {
	cfg          *config.Config
	ctrl         *controller.Controller
	table        table.Model
	vp           viewport.Model
	logs         []string
	state        controller.State
	mapIdx       int
	wrap         bool
	autoscroll   bool
	help         bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.Config) tuiModel {
	cols := []table.Column{
		{Title: "Field", Width: 16},
		{Title: "Value", Width: 24},
		{Title: "Field", Width: 16},
		{Title: "Value", Width: 24},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(4))
	vp := viewport.New(0, 0)
	m := tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         vp,
		autoscroll: true,
	}
	for i, mc := range cfg.Maps {
		if mc.ID == cfg.DefaultMap {
			m.mapIdx = i
		}
	}
	return m
}

func tickCmd() tea.Cmd {
	return tea.Tick(stateTickRate, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m tuiModel) Init() tea.Cmd { return tickCmd() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
				m.updateViewportHeight()
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m, m.runAction("start", func(ctrl *controller.Controller) (string, error) {
				return ctrl.StartSession(context.Background())
			})
		case "x":
			return m, m.runAction("stop", func(ctrl *controller.Controller) (string, error) {
				return "session stopped", ctrl.Stop()
			})
		case "a":
			return m, m.runAction("toggle-ai", func(ctrl *controller.Controller) (string, error) {
				return ctrl.ToggleAI(context.Background())
			})
		case "e":
			return m, m.runAction("emergency", func(ctrl *controller.Controller) (string, error) {
				return ctrl.DispatchEmergency(context.Background())
			})
		case "b":
			return m, m.benchmarkCmd(traffic.RunBaseline)
		case "B":
			return m, m.benchmarkCmd(traffic.RunWithAI)
		case "c":
			return m, m.compareCmd()
		case "m":
			cmd := m.cycleMapCmd()
			return m, cmd
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		case "h", "?":
			m.help = !m.help
			m.updateViewportHeight()
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m, nil
	case stepMsg:
		m.appendLog(msg.line)
	case benchMsg:
		m.appendLog(msg.line)
	case actionMsg:
		line := msg.line
		if msg.err != nil {
			line = fmt.Sprintf("%serror:%s %v", colorRed, colorReset, msg.err)
		}
		m.appendLog(line)
	case tickMsg:
		if m.ctrl != nil {
			m.state = m.ctrl.State()
			m.table.SetRows(m.stateRows())
			m.header = m.renderHeader()
			m.headerHeight = lipgloss.Height(m.header)
			m.updateViewportHeight()
		}
		return m, tickCmd()
	case setControllerMsg:
		m.ctrl = msg.ctrl
		m.state = msg.ctrl.State()
	}
	return m, nil
}

// runAction calls into the controller off the update loop and reports
// the outcome as a log line.
func (m tuiModel) runAction(name string, fn func(*controller.Controller) (string, error)) tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := fn(ctrl)
		if err != nil {
			return actionMsg{err: fmt.Errorf("%s: %w", name, err)}
		}
		return actionMsg{line: fmt.Sprintf("%s%s:%s %s", colorCyan, name, colorReset, out)}
	}
}

func (m tuiModel) benchmarkCmd(kind traffic.RunKind) tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		sum, err := ctrl.RunBenchmark(context.Background(), kind)
		if err != nil {
			return actionMsg{err: fmt.Errorf("benchmark: %w", err)}
		}
		return actionMsg{line: report.RenderSummary(kind.RunID(ctrl.State().MapID), sum)}
	}
}

func (m tuiModel) compareCmd() tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := ctrl.Compare()
		if err != nil {
			return actionMsg{err: fmt.Errorf("compare: %w", err)}
		}
		return actionMsg{line: report.Render(res, true)}
	}
}

// cycleMapCmd advances to the next configured map. The controller
// rejects the switch while a session or benchmark is active.
func (m *tuiModel) cycleMapCmd() tea.Cmd {
	ctrl := m.ctrl
	if ctrl == nil || len(m.cfg.Maps) == 0 {
		return nil
	}
	next := (m.mapIdx + 1) % len(m.cfg.Maps)
	target := m.cfg.Maps[next]
	if err := ctrl.SelectMap(target.ID); err != nil {
		return func() tea.Msg { return actionMsg{err: fmt.Errorf("select-map: %w", err)} }
	}
	m.mapIdx = next
	return func() tea.Msg {
		return actionMsg{line: fmt.Sprintf("%smap:%s %s (%s)", colorCyan, colorReset, target.ID, target.Label)}
	}
}

func (m *tuiModel) appendLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	m.refreshViewport()
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	benchHeight := lipgloss.Height(m.renderBenchmarks())
	h := m.height - m.headerHeight - bottomHeight - benchHeight - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) stateRows() []table.Row {
	session := "idle"
	if m.state.Session.Running {
		session = "running"
	}
	if m.state.Testing {
		session = "benchmark"
	}
	ai := "off"
	if m.state.Session.AIEnabled {
		ai = "on"
	}
	we, ns, phase := "-", "-", "-"
	if snap := m.state.Snapshot; snap != nil {
		we = fmt.Sprintf("%d", snap.VehiclesWestEast)
		ns = fmt.Sprintf("%d", snap.VehiclesNorthSouth)
		if snap.CurrentPhase != nil {
			phase = fmt.Sprintf("%d", *snap.CurrentPhase)
		}
	}
	bench := "none"
	switch {
	case m.state.Baseline != nil && m.state.WithAI != nil:
		bench = "both"
	case m.state.Baseline != nil:
		bench = "baseline"
	case m.state.WithAI != nil:
		bench = "with_ai"
	}
	return []table.Row{
		{"Backend", m.cfg.BackendURL, "Map", m.state.MapID},
		{"Session", session, "AI Control", ai},
		{"Vehicles W-E", we, "Vehicles N-S", ns},
		{"Phase", phase, "Benchmarks", bench},
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		m.renderBenchmarks(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	return m.table.View()
}

func (m tuiModel) renderBenchmarks() string {
	var parts []string
	if m.state.Baseline != nil {
		id := traffic.RunBaseline.RunID(m.state.MapID)
		parts = append(parts, report.RenderSummary(id, *m.state.Baseline))
	}
	if m.state.WithAI != nil {
		id := traffic.RunWithAI.RunID(m.state.MapID)
		parts = append(parts, report.RenderSummary(id, *m.state.WithAI))
	}
	if len(parts) == 0 {
		return "Benchmarks: none"
	}
	return strings.Join(parts, "\n")
}

func (m tuiModel) renderBottom() string {
	indicator := func(on bool) string {
		c := lipgloss.Color("9")
		if on {
			c = lipgloss.Color("10")
		}
		return lipgloss.NewStyle().Foreground(c).Render("●")
	}
	line := fmt.Sprintf("Session %s | AI %s | Benchmark %s | Wrap %s | Scroll %s",
		indicator(m.state.Session.Running),
		indicator(m.state.Session.AIEnabled),
		indicator(m.state.Testing),
		indicator(m.wrap),
		indicator(m.autoscroll))
	if m.state.LastError != "" {
		line = fmt.Sprintf("%s | %slast error: %s%s", line, colorRed, m.state.LastError, colorReset)
	}
	return line
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" enter  start session",
		" x      stop session",
		" a      toggle AI signal control",
		" e      dispatch emergency vehicle",
		" b      run baseline benchmark",
		" B      run benchmark with AI",
		" c      compare benchmark results",
		" m      cycle map (idle only)",
		" w      toggle line wrap",
		" s      toggle auto-scroll",
		" h/?    toggle this help view",
		" q      quit",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
