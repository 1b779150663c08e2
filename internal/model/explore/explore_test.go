package explore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/state"
	"github.com/vinser/gridwalker/internal/world"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newModel(t *testing.T, cols, rows int, eng exchange.Engine) (Model, *clock) {
	t.Helper()
	cfg := config.Default()
	cfg.Theme = config.ThemeNight
	st := state.New(nil, cfg)
	st.Theme = config.ThemeNight
	w, err := world.New(cols, rows, world.GenBlocks, 7)
	if err != nil {
		t.Fatal(err)
	}
	m := New(st, cfg, w, eng)
	c := &clock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	m.now = c.now
	return m, c
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runSearch presses enter and feeds the finished search back.
func runSearch(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := m.Update(key("enter"))
	if cmd == nil || !m.Busy() {
		t.Fatal("enter did not start a search")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestMoveCooldown(t *testing.T) {
	// A single cell: every move bumps into the edge, only the direction changes.
	m, c := newModel(t, 1, 1, exchange.InProcess{})
	m, _ = m.Update(key("l"))
	if got := m.world.Player().Dir(); got != grid.Right {
		t.Fatalf("Dir() = %v, want right", got)
	}
	m, _ = m.Update(key("h"))
	if got := m.world.Player().Dir(); got != grid.Right {
		t.Fatalf("move inside the cooldown was accepted: Dir() = %v", got)
	}
	c.t = c.t.Add(m.cfg.MoveCooldown())
	m, _ = m.Update(key("h"))
	if got := m.world.Player().Dir(); got != grid.Left {
		t.Fatalf("Dir() = %v, want left after the cooldown", got)
	}
}

func TestSearchFound(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	want := m.world.Goal().X - m.world.Player().Pos().X
	if want < 0 {
		want = -want
	}
	m = runSearch(t, m)
	if m.Busy() {
		t.Fatal("still busy after the result")
	}
	if m.pathLen != want || len(m.world.Path()) != want+1 {
		t.Fatalf("pathLen %d, path %v, want %d steps", m.pathLen, m.world.Path(), want)
	}
	if m.state.Searches != 1 || m.state.Found != 1 {
		t.Fatalf("counters searches=%d found=%d", m.state.Searches, m.state.Found)
	}
	if !strings.Contains(m.View(), "Path found") {
		t.Fatal("status line missing from the view")
	}
}

func TestStaleResultDropped(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	m, cmd := m.Update(key("enter"))
	msg := cmd()
	m, _ = m.Update(key("n"))
	m, _ = m.Update(msg)
	if m.state.Searches != 0 || m.pathLen != -1 || len(m.world.Path()) != 0 {
		t.Fatalf("stale result applied: searches=%d pathLen=%d", m.state.Searches, m.pathLen)
	}
}

func TestTraceAnimation(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	m.state.Trace = true
	m, cmd := m.Update(key("enter"))
	res := cmd().(SearchResultMsg)
	steps := len(res.Response.Trace)
	if steps == 0 || res.Response.Expanded != steps {
		t.Fatalf("trace %d steps, expanded %d", steps, res.Response.Expanded)
	}
	m, _ = m.Update(res)
	frames := 1
	for m.trace != nil {
		if len(m.world.Path()) != 0 {
			t.Fatal("path shown before the trace finished")
		}
		if m.current == nil || !m.expanded[*m.current] {
			t.Fatal("current cell not marked expanded")
		}
		m, _ = m.Update(FrameMsg{Generation: m.generation})
		frames++
		if frames > steps {
			t.Fatalf("more frames than trace steps (%d)", steps)
		}
	}
	if frames != steps {
		t.Fatalf("played %d frames, want %d", frames, steps)
	}
	if m.pathLen < 1 || len(m.world.Path()) != m.pathLen+1 {
		t.Fatalf("path not shown after the trace: %v", m.world.Path())
	}
}

func TestStaleFrameDropped(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	m.trace = [][]grid.Position{{{X: 0, Y: 0}}, {{X: 1, Y: 0}}}
	m.expanded = map[grid.Position]bool{}
	m, cmd := m.Update(FrameMsg{Generation: m.generation + 1})
	if cmd != nil || m.frame != 0 {
		t.Fatal("frame of another generation was played")
	}
}

type failingEngine struct{}

func (failingEngine) Name() string { return "failing" }

func (failingEngine) Solve(context.Context, exchange.Request) (exchange.Response, error) {
	return exchange.Response{}, errors.New("engine crashed")
}

func TestSearchError(t *testing.T) {
	m, _ := newModel(t, 5, 1, failingEngine{})
	m = runSearch(t, m)
	if m.state.Searches != 0 {
		t.Fatal("failed search was counted")
	}
	if !strings.Contains(m.status, "engine crashed") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestReachGoal(t *testing.T) {
	m, _ := newModel(t, 2, 1, exchange.InProcess{})
	dir := "l"
	if m.world.Goal().X < m.world.Player().Pos().X {
		dir = "h"
	}
	m, _ = m.Update(key(dir))
	if m.state.GoalsReached != 1 || m.world.Layout() != 2 {
		t.Fatalf("goals=%d layout=%d", m.state.GoalsReached, m.world.Layout())
	}
}

func TestToggleKeys(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	m, _ = m.Update(key("b"))
	if m.state.Mode != "best-first" {
		t.Fatalf("mode = %q", m.state.Mode)
	}
	m, _ = m.Update(key("b"))
	if m.state.Mode != "uniform" {
		t.Fatalf("mode = %q", m.state.Mode)
	}
	m, _ = m.Update(key("t"))
	if !m.state.Trace {
		t.Fatal("trace not toggled")
	}
	m, _ = m.Update(key("m"))
	if !m.state.Mute {
		t.Fatal("mute not toggled")
	}
}

func TestScreenKeys(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"s", OpenSettingsMsg{}},
		{"?", OpenHelpMsg{}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(key(tt.key))
		if cmd == nil || cmd() != tt.want {
			t.Errorf("%q: got %v", tt.key, cmd)
		}
	}
}

func TestView(t *testing.T) {
	m, _ := newModel(t, 5, 1, exchange.InProcess{})
	v := m.View()
	for _, want := range []string{"Mode: uniform", "Engine: inprocess", "Path: -"} {
		if !strings.Contains(v, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}
