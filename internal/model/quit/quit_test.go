package quit

import (
	"strings"
	"testing"
	"time"
)

func TestQuitTimesOut(t *testing.T) {
	m := New(3, 2, 1, 40, 10)
	if !strings.Contains(m.View(), "Searches run: 3, paths found: 2, goals reached: 1") {
		t.Fatalf("view lacks totals: %q", m.View())
	}
	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("no tick scheduled")
	}
	m.quitUntil = time.Now().Add(-time.Second)
	_, cmd = m.Update(TickMsg(time.Now()))
	if _, ok := cmd().(TimedoutMsg); !ok {
		t.Fatal("expected TimedoutMsg after the quit period")
	}
}
