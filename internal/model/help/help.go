package help

import (
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/gridwalker/internal/embeddata"
	"github.com/vinser/gridwalker/internal/render"
)

type Model struct {
	width       int
	height      int
	startHeight int
	termWidth   int
	termHeight  int

	viewport viewport.Model
}

type CloseHelpMsg struct{}

func closeHelpCmd() tea.Cmd {
	return func() tea.Msg {
		return CloseHelpMsg{}
	}
}

func New(width, height int) Model {
	width = max(width, lipgloss.Width(footer))
	md, err := embeddata.ReadHelpMD()
	if err != nil {
		log.Fatal(err)
	}

	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	const glamourGutter = 2
	vp.SetContent(glamContent(string(md), width, vp.Style.GetHorizontalFrameSize(), glamourGutter))

	return Model{
		width:       width,
		height:      height,
		startHeight: height,
		viewport:    vp,
	}
}

// SetSize shrinks the viewport to fit a small terminal.
func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
	if m.startHeight > m.termHeight-5 {
		m.height = m.termHeight
		m.viewport.Height = max(1, m.termHeight-5)
	} else {
		m.height = m.startHeight
		m.viewport.Height = m.startHeight
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?":
			return m, closeHelpCmd()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

const footer = "↑ ↓ scroll, esc back, q quit"

func (m Model) View() string {
	return render.Page("Help", m.viewport.View(), footer, m.width, m.height, m.termWidth, m.termHeight)
}

func glamContent(content string, width, frame, gutter int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-frame-gutter),
	)
	if err != nil {
		return content
	}
	str, err := r.Render(content)
	if err != nil {
		return content
	}
	return str
}
