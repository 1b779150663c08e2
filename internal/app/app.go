package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/flags"
	"github.com/vinser/gridwalker/internal/model/explore"
	"github.com/vinser/gridwalker/internal/model/help"
	"github.com/vinser/gridwalker/internal/model/quit"
	"github.com/vinser/gridwalker/internal/model/setup"
	"github.com/vinser/gridwalker/internal/sound"
	"github.com/vinser/gridwalker/internal/state"
	"github.com/vinser/gridwalker/internal/world"
)

type status uint

const (
	statusExplore status = iota
	statusSettings
	statusHelp
	statusQuitting
)

const (
	pageWidth  = 64
	pageHeight = 18
)

type Model struct {
	status status
	cfg    *config.Config
	state  *state.State
	world  *world.World
	// models
	explore explore.Model
	setup   setup.Model
	help    help.Model
	quit    quit.Model
	// terminal size cache
	termWidth  int
	termHeight int
}

// New builds the application from the command line: configuration first,
// then the saved state, then the flags on top of both.
func New(fl *flags.Flags) (Model, error) {
	cfg := config.Default()
	if fl.Config != "" {
		var err error
		if cfg, err = config.Load(fl.Config); err != nil {
			return Model{}, err
		}
	}

	st := state.Load(state.OpenStore(), cfg)
	applyFlags(st, cfg, fl)
	st.AttachSound(newSoundManager())

	seed := cfg.Grid.Seed
	if fl.IsSet("seed") {
		seed = fl.Seed
	}
	w, err := newWorld(cfg, st, seed)
	if err != nil {
		return Model{}, err
	}
	st.Seed = w.Seed()

	m := Model{
		status: statusExplore,
		cfg:    cfg,
		state:  st,
		world:  w,
	}
	m.resetExplore()
	return m, nil
}

func applyFlags(st *state.State, cfg *config.Config, fl *flags.Flags) {
	if fl.Reset {
		st.Reset(cfg)
	}
	if fl.IsSet("mode") {
		st.Mode = fl.Mode
	}
	if fl.IsSet("generator") {
		st.Generator = fl.Generator
	}
	if fl.IsSet("engine") {
		st.Engine = fl.Engine
	}
	if fl.IsSet("trace") {
		st.Trace = fl.Trace
	}
	if fl.Mute {
		st.Mute = true
	}
}

func newSoundManager() *sound.Manager {
	mgr, err := sound.NewManager(sound.CommonSampleRate)
	if err != nil {
		log.Printf("[Sound] Warning: audio unavailable: %v (running muted)", err)
		return nil
	}
	if err := mgr.LoadSamples(); err != nil {
		log.Printf("[Sound] Warning: %v", err)
	}
	return mgr
}

// newWorld creates the first world. A maze that does not fit the grid falls
// back to blocks.
func newWorld(cfg *config.Config, st *state.State, seed int64) (*world.World, error) {
	gen, err := world.ParseGenerator(st.Generator)
	if err != nil {
		gen = cfg.Generator()
	}
	w, err := world.New(cfg.Grid.Cols, cfg.Grid.Rows, gen, seed)
	if errors.Is(err, world.ErrTooSmall) {
		log.Printf("maze does not fit %dx%d, using blocks", cfg.Grid.Cols, cfg.Grid.Rows)
		st.Generator = string(world.GenBlocks)
		w, err = world.New(cfg.Grid.Cols, cfg.Grid.Rows, world.GenBlocks, seed)
	}
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	return w, nil
}

// newEngine returns the engine selected in the state.
func newEngine(cfg *config.Config, st *state.State) exchange.Engine {
	if st.Engine != config.EngineExternal {
		return exchange.InProcess{Reconstruction: cfg.Reconstruction()}
	}
	return exchange.Subprocess{
		Executable:     resolveExecutable(cfg.Engine.Executable),
		Reconstruction: cfg.Reconstruction(),
		Timeout:        cfg.EngineTimeout(),
	}
}

// resolveExecutable finds a bare executable name in PATH or next to the
// running binary. Paths are returned unchanged.
func resolveExecutable(name string) string {
	if filepath.Base(name) != name {
		return name
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	if self, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(self), name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	log.Printf("engine executable %q not found", name)
	return name
}

func (m *Model) resetExplore() {
	m.explore = explore.New(m.state, m.cfg, m.world, newEngine(m.cfg, m.state))
	m.explore.SetSize(m.termWidth, m.termHeight)
}

func (m *Model) settings() setup.Settings {
	return setup.Settings{
		Mode:      m.state.Mode,
		Generator: m.state.Generator,
		Engine:    m.state.Engine,
		Trace:     m.state.Trace,
		Theme:     m.state.Theme,
		Mute:      m.state.Mute,
	}
}

func (m *Model) applySettings(s setup.Settings) {
	if s.Reset {
		m.state.Reset(m.cfg)
		m.state.Seed = m.world.Seed()
	}
	m.state.Mode = s.Mode
	m.state.Engine = s.Engine
	m.state.Trace = s.Trace
	m.state.Theme = s.Theme
	m.state.SetMute(s.Mute)

	if gen := world.Generator(s.Generator); gen != m.world.Generator() {
		m.world.SetGenerator(gen)
		if err := m.world.Regenerate(); err != nil {
			log.Printf("%s layout: %v, using blocks", gen, err)
			m.world.SetGenerator(world.GenBlocks)
			if err := m.world.Regenerate(); err != nil {
				log.Printf("blocks layout: %v", err)
			}
		}
	}
	m.state.Generator = string(m.world.Generator())

	if err := m.state.Save(); err != nil {
		log.Printf("[State] Warning: %v", err)
	}
}

// Close saves the state and releases the audio device.
func (m Model) Close() {
	if err := m.state.Save(); err != nil {
		log.Printf("[State] Warning: %v", err)
	}
	m.state.SoundManager.Close()
}

func (m Model) Init() tea.Cmd {
	return m.explore.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.status == statusQuitting {
				return m, tea.Quit
			}
			m.status = statusQuitting
			m.state.SoundManager.StopAll()
			if err := m.state.Save(); err != nil {
				log.Printf("[State] Warning: %v", err)
			}
			m.quit = quit.New(m.state.Searches, m.state.Found, m.state.GoalsReached, pageWidth, pageHeight)
			m.quit.SetSize(m.termWidth, m.termHeight)
			return m, m.quit.Init()
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.explore.SetSize(msg.Width, msg.Height)
		switch m.status {
		case statusSettings:
			m.setup.SetSize(msg.Width, msg.Height)
		case statusHelp:
			m.help.SetSize(msg.Width, msg.Height)
		case statusQuitting:
			m.quit.SetSize(msg.Width, msg.Height)
		}
		return m, tea.ClearScreen
	case explore.SearchResultMsg, explore.FrameMsg, explore.ThemeTickMsg:
		// The explorer keeps its timers and searches while other screens are shown.
		if m.status != statusQuitting {
			m.explore, cmd = m.explore.Update(msg)
		}
		return m, cmd
	}

	switch m.status {
	case statusExplore:
		switch msg.(type) {
		case explore.OpenSettingsMsg:
			m.status = statusSettings
			m.setup = setup.New(m.settings(), pageWidth, pageHeight)
			m.setup.SetSize(m.termWidth, m.termHeight)
		case explore.OpenHelpMsg:
			m.status = statusHelp
			m.help = help.New(pageWidth, pageHeight)
			m.help.SetSize(m.termWidth, m.termHeight)
		default:
			m.explore, cmd = m.explore.Update(msg)
		}
	case statusSettings:
		switch msg := msg.(type) {
		case setup.SaveSettingsMsg:
			m.status = statusExplore
			m.applySettings(msg.Settings)
			m.resetExplore()
		case setup.DiscardSettingsMsg:
			m.status = statusExplore
		default:
			m.setup, cmd = m.setup.Update(msg)
		}
	case statusHelp:
		switch msg.(type) {
		case help.CloseHelpMsg:
			m.status = statusExplore
		default:
			m.help, cmd = m.help.Update(msg)
		}
	case statusQuitting:
		switch msg.(type) {
		case quit.TimedoutMsg:
			return m, tea.Quit
		default:
			m.quit, cmd = m.quit.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.status {
	case statusExplore:
		return m.explore.View()
	case statusSettings:
		return m.setup.View()
	case statusHelp:
		return m.help.View()
	case statusQuitting:
		return m.quit.View()
	}
	return ""
}
