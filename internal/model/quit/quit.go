package quit

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/gridwalker/internal/render"
)

const quitPeriod = 1500 * time.Millisecond

type Model struct {
	quitUntil  time.Time
	searches   int
	found      int
	goals      int
	width      int
	height     int
	termWidth  int
	termHeight int
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type TimedoutMsg struct{}

func timedoutCmd() tea.Cmd {
	return func() tea.Msg {
		return TimedoutMsg{}
	}
}

// New shows the session totals for a short while before the program exits.
func New(searches, found, goals, width, height int) Model {
	return Model{
		quitUntil: time.Now().Add(quitPeriod),
		searches:  searches,
		found:     found,
		goals:     goals,
		width:     width,
		height:    height,
	}
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if time.Now().After(m.quitUntil) {
		return m, timedoutCmd()
	}
	return m, tick()
}

func (m Model) View() string {
	content := fmt.Sprintf("Searches run: %d, paths found: %d, goals reached: %d\n\nBye!", m.searches, m.found, m.goals)
	return render.Page("Quitting", content, "", m.width, m.height, m.termWidth, m.termHeight)
}
