package setup

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/render"
	"github.com/vinser/gridwalker/internal/search"
	"github.com/vinser/gridwalker/internal/style"
	"github.com/vinser/gridwalker/internal/world"
)

const (
	selectedMode = iota
	selectedGenerator
	selectedEngine
	selectedTrace
	selectedTheme
	selectedMute
	selectedReset

	numSettings
)

var (
	modes      = []string{search.Uniform.String(), search.BestFirst.String()}
	generators = []string{string(world.GenBlocks), string(world.GenMaze)}
	engines    = []string{config.EngineInProcess, config.EngineExternal}
	themes     = []string{config.ThemeAuto, config.ThemeDay, config.ThemeNight}
)

// Settings are the values edited on the settings screen.
type Settings struct {
	Mode      string
	Generator string
	Engine    string
	Trace     bool
	Theme     string
	Mute      bool
	Reset     bool
}

type Model struct {
	settings Settings

	selectedSetting int

	width      int
	height     int
	termWidth  int
	termHeight int
}

type SaveSettingsMsg struct {
	Settings
}

func saveSettingsCmd(s Settings) tea.Cmd {
	return func() tea.Msg {
		return SaveSettingsMsg{Settings: s}
	}
}

type DiscardSettingsMsg struct{}

func discardSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return DiscardSettingsMsg{}
	}
}

func New(s Settings, width, height int) Model {
	s.Reset = false
	return Model{
		settings: s,
		width:    max(width, lipgloss.Width(footer)),
		height:   height,
	}
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
}

func (m Model) Settings() Settings {
	return m.settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return m, saveSettingsCmd(m.settings)
		case "esc":
			return m, discardSettingsCmd()
		case "up", "k":
			if m.selectedSetting > 0 {
				m.selectedSetting--
			}
		case "down", "j":
			if m.selectedSetting < numSettings-1 {
				m.selectedSetting++
			}
		case "enter", " ":
			m.change()
		}
	}
	return m, nil
}

func (m *Model) change() {
	s := &m.settings
	switch m.selectedSetting {
	case selectedMode:
		s.Mode = next(modes, s.Mode)
	case selectedGenerator:
		s.Generator = next(generators, s.Generator)
	case selectedEngine:
		s.Engine = next(engines, s.Engine)
	case selectedTrace:
		s.Trace = !s.Trace
	case selectedTheme:
		s.Theme = next(themes, s.Theme)
	case selectedMute:
		s.Mute = !s.Mute
	case selectedReset:
		s.Reset = !s.Reset
	}
}

// next cycles through options. An unknown value restarts at the first one.
func next(options []string, current string) string {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

const footer = "↑ ↓ select, space change, s save, esc cancel"

func (m Model) View() string {
	type option struct {
		label string
		value string
	}
	s := m.settings
	options := []option{
		{"Search mode", s.Mode},
		{"Wall layout", s.Generator},
		{"Search engine", s.Engine},
		{"Animate trace", fmt.Sprintf("%v", s.Trace)},
		{"Colour theme", s.Theme},
		{"Mute all sounds", fmt.Sprintf("%v", s.Mute)},
		{"Reset counters", fmt.Sprintf("%v", s.Reset)},
	}

	var b strings.Builder
	for i, opt := range options {
		prefix := "  "
		if i == m.selectedSetting {
			prefix = "➤ "
		}
		line := fmt.Sprintf("%s%s: %s", prefix, opt.label, opt.value)
		if i == m.selectedSetting {
			b.WriteString(style.SetupItemSelected.Render(line))
		} else {
			b.WriteString(style.SetupItem.Render(line))
		}
		b.WriteString("\n")
	}
	if s.Engine == config.EngineExternal {
		b.WriteString("\n" + style.SetupHint.Render("The external engine runs the pathfind executable."))
	}
	return render.Page(style.SetupTitle.Render("Settings"), b.String(), footer, m.width, m.height, m.termWidth, m.termHeight)
}
