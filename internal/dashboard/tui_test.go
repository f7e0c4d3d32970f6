package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trafficdash/internal/config"
	"trafficdash/internal/record"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func testConfig() *config.Config {
	return &config.Config{
		BackendURL: "http://localhost:8001",
		DefaultMap: "intersection",
		Maps: []config.MapConfig{
			{ID: "intersection", Label: "Simple Intersection"},
			{ID: "bangalore", Label: "Bangalore Silk Junction"},
		},
	}
}

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	phase := 2
	row := record.StepRow{
		SessionID:  "s1",
		MapID:      "intersection",
		AIEnabled:  true,
		VehiclesWE: 4,
		VehiclesNS: 7,
		Phase:      phase,
		Timestamp:  time.Unix(0, 0).UTC(),
	}
	if err := w.WriteStep(row); err != nil {
		t.Fatalf("write step: %v", err)
	}
	sm, ok := p.msgs[0].(stepMsg)
	if !ok {
		t.Fatalf("expected stepMsg, got %T", p.msgs[0])
	}
	if !strings.Contains(sm.line, "we=4") || !strings.Contains(sm.line, "ns=7") {
		t.Errorf("step line missing counts: %s", sm.line)
	}
	br := record.BenchmarkRow{RunID: "intersection_before_ai", Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteBenchmark(br); err != nil {
		t.Fatalf("write benchmark: %v", err)
	}
	bm, ok := p.msgs[1].(benchMsg)
	if !ok {
		t.Fatalf("expected benchMsg, got %T", p.msgs[1])
	}
	if !strings.Contains(bm.line, "intersection_before_ai") {
		t.Errorf("bench line missing run id: %s", bm.line)
	}
}

func TestStepMsgAppendsToLog(t *testing.T) {
	m := newTUIModel(testConfig())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = mi.(tuiModel)
	mi, _ = m.Update(stepMsg{line: "tick one"})
	m = mi.(tuiModel)
	if len(m.logs) != 1 || m.logs[0] != "tick one" {
		t.Fatalf("unexpected logs: %v", m.logs)
	}
	if !strings.Contains(m.vp.View(), "tick one") {
		t.Errorf("viewport missing log line")
	}
}

func TestWrapToggle(t *testing.T) {
	m := newTUIModel(testConfig())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	m = mi.(tuiModel)
	long := "one two three four five six"
	mi, _ = m.Update(stepMsg{line: long})
	m = mi.(tuiModel)
	if m.wrap {
		t.Fatalf("wrap should start disabled")
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m = mi.(tuiModel)
	if !m.wrap {
		t.Fatalf("wrap not toggled")
	}
	lines := strings.Split(m.vp.View(), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[1]) == "" {
		t.Fatalf("expected wrapped content on second line")
	}
}

func TestScrollToggle(t *testing.T) {
	m := newTUIModel(testConfig())
	m.vp.Height = 1
	m.vp.Width = 20
	mi, _ := m.Update(stepMsg{line: "l1"})
	m = mi.(tuiModel)
	mi, _ = m.Update(stepMsg{line: "l2"})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset 1, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(tuiModel)
	if m.autoscroll {
		t.Fatalf("autoscroll should be off")
	}
	mi, _ = m.Update(stepMsg{line: "l3"})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset unchanged, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = mi.(tuiModel)
	if m.vp.YOffset != 0 {
		t.Fatalf("expected YOffset 0 after scrolling up, got %d", m.vp.YOffset)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTUIModel(testConfig())
	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = mi.(tuiModel)
	if !m.help {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Key Bindings") {
		t.Errorf("help view missing key bindings")
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mi.(tuiModel)
	if m.help {
		t.Fatalf("help not dismissed")
	}
}

func TestActionKeysWithoutControllerAreNoops(t *testing.T) {
	m := newTUIModel(testConfig())
	for _, key := range []rune{'a', 'e', 'b', 'B', 'c', 'm'} {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
		if cmd != nil {
			t.Errorf("key %q produced a command without a controller", key)
		}
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("enter produced a command without a controller")
	}
}
