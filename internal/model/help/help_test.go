package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHelpView(t *testing.T) {
	m := New(60, 20)
	if !strings.Contains(m.View(), "Help") {
		t.Fatal("view lacks the title")
	}
}

func TestHelpCloses(t *testing.T) {
	m := New(60, 20)
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyRunes, Runes: []rune{'?'}}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%v: no command", key)
		}
		if _, ok := cmd().(CloseHelpMsg); !ok {
			t.Fatalf("%v: command does not close help", key)
		}
	}
}

func TestHelpSetSize(t *testing.T) {
	m := New(60, 30)
	m.SetSize(80, 12)
	if m.viewport.Height != 7 {
		t.Fatalf("viewport height = %d, want 7", m.viewport.Height)
	}
	m.SetSize(80, 60)
	if m.viewport.Height != 30 {
		t.Fatalf("viewport height = %d, want 30", m.viewport.Height)
	}
}
