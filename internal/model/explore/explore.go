package explore

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/render"
	"github.com/vinser/gridwalker/internal/search"
	"github.com/vinser/gridwalker/internal/sound"
	"github.com/vinser/gridwalker/internal/state"
	"github.com/vinser/gridwalker/internal/style"
	"github.com/vinser/gridwalker/internal/theme"
	"github.com/vinser/gridwalker/internal/world"
)

const themePeriod = time.Minute

// headerRows is the height of everything drawn around the grid.
const headerRows = 6

type Model struct {
	state   *state.State
	cfg     *config.Config
	world   *world.World
	engine  exchange.Engine
	palette theme.Palette

	lastMove time.Time

	// generation grows whenever the grid or the player changes. Search
	// results and animation frames of older generations are dropped.
	generation int
	cancel     context.CancelFunc
	busy       bool

	trace    [][]grid.Position
	pending  []grid.Position // path shown once the trace is replayed
	frame    int
	expanded map[grid.Position]bool
	frontier []grid.Position
	current  *grid.Position

	pathLen     int // -1 when no search finished on this grid
	expandedLen int
	status      string
	statusStyle string

	termWidth  int
	termHeight int

	now func() time.Time
}

// SearchResultMsg carries a finished search back to the UI.
type SearchResultMsg struct {
	Generation int
	Response   exchange.Response
	Err        error
	Elapsed    time.Duration
}

func searchCmd(ctx context.Context, eng exchange.Engine, req exchange.Request, gen int) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		resp, err := eng.Solve(ctx, req)
		return SearchResultMsg{Generation: gen, Response: resp, Err: err, Elapsed: time.Since(started)}
	}
}

// FrameMsg advances the trace animation by one expansion.
type FrameMsg struct {
	Generation int
}

func frameCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FrameMsg{Generation: gen}
	})
}

// ThemeTickMsg refreshes the auto theme as the sun moves.
type ThemeTickMsg time.Time

func themeTick() tea.Cmd {
	return tea.Tick(themePeriod, func(t time.Time) tea.Msg {
		return ThemeTickMsg(t)
	})
}

type OpenSettingsMsg struct{}

func openSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenSettingsMsg{}
	}
}

type OpenHelpMsg struct{}

func openHelpCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenHelpMsg{}
	}
}

// New returns an explorer over w that runs its searches on eng.
func New(st *state.State, cfg *config.Config, w *world.World, eng exchange.Engine) Model {
	m := Model{
		state:   st,
		cfg:     cfg,
		world:   w,
		engine:  eng,
		pathLen: -1,
		now:     time.Now,
	}
	m.palette = theme.Pick(st.Theme, m.now(), cfg.Location)
	return m
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
}

func (m Model) Init() tea.Cmd {
	return themeTick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case SearchResultMsg:
		return m.handleResult(msg)
	case FrameMsg:
		if msg.Generation != m.generation || m.trace == nil {
			return m, nil
		}
		return m.advance()
	case ThemeTickMsg:
		m.palette = theme.Pick(m.state.Theme, m.now(), m.cfg.Location)
		return m, themeTick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (Model, tea.Cmd) {
	if d := world.KeyDirection(key); d != grid.No {
		return m.move(d)
	}
	switch key {
	case "n":
		m.invalidate()
		if err := m.world.Regenerate(); err != nil {
			m.setStatus("new grid: "+err.Error(), "error")
			return m, nil
		}
		m.state.Play(sound.NEW_GRID)
		m.setStatus("New grid", "")
	case "enter", "f":
		return m.startSearch()
	case "b":
		if m.mode() == search.Uniform {
			m.state.Mode = search.BestFirst.String()
		} else {
			m.state.Mode = search.Uniform.String()
		}
		m.save()
		m.setStatus("Mode: "+m.state.Mode, "")
	case "t":
		m.state.Trace = !m.state.Trace
		m.save()
		m.setStatus(fmt.Sprintf("Trace animation: %v", onOff(m.state.Trace)), "")
	case "m":
		m.state.SetMute(!m.state.Mute)
		m.save()
	case "s":
		m.invalidate()
		return m, openSettingsCmd()
	case "?":
		return m, openHelpCmd()
	}
	return m, nil
}

func (m Model) move(d grid.Direction) (Model, tea.Cmd) {
	now := m.now()
	if now.Sub(m.lastMove) < m.cfg.MoveCooldown() {
		return m, nil
	}
	m.lastMove = now
	res, err := m.world.Move(d)
	switch {
	case err != nil:
		m.invalidate()
		m.setStatus("new grid: "+err.Error(), "error")
	case res.Bumped:
		m.state.Play(sound.BUMP)
	case res.Reached:
		m.invalidate()
		m.state.RecordGoal()
		m.save()
		m.state.Play(sound.GOAL)
		m.setStatus("Goal reached, here is a new grid", "found")
	case res.Moved:
		m.invalidate()
		m.state.Play(sound.STEP)
	}
	return m, nil
}

// invalidate forgets everything tied to the current grid and player position
// and cancels a running search.
func (m *Model) invalidate() {
	m.generation++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.busy = false
	m.clearTrace()
	m.pathLen = -1
	m.expandedLen = 0
}

func (m *Model) clearTrace() {
	m.trace = nil
	m.pending = nil
	m.frame = 0
	m.expanded = nil
	m.frontier = nil
	m.current = nil
}

func (m Model) startSearch() (Model, tea.Cmd) {
	m.invalidate()
	m.world.SetPath(nil)
	req := exchange.Request{
		Grid:  m.world.Snapshot(),
		Start: m.world.Player().Pos(),
		Goal:  m.world.Goal(),
		Mode:  m.mode(),
		Trace: m.state.Trace,
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.busy = true
	m.setStatus(fmt.Sprintf("Searching (%s, %s)...", req.Mode, m.engine.Name()), "busy")
	return m, searchCmd(ctx, m.engine, req, m.generation)
}

func (m Model) handleResult(msg SearchResultMsg) (Model, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}
	m.busy = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if msg.Err != nil {
		log.Printf("search: %v", msg.Err)
		m.setStatus("Search failed: "+msg.Err.Error(), "error")
		return m, nil
	}
	resp := msg.Response
	m.state.RecordSearch(len(resp.Path) > 0)
	m.save()
	m.expandedLen = resp.Expanded
	if len(resp.Trace) > 0 {
		m.trace = resp.Trace
		m.frame = 0
		m.expanded = make(map[grid.Position]bool)
		m.pending = resp.Path
		m.setStatus("Exploring...", "busy")
		return m.advance()
	}
	m.finish(resp.Path, msg.Elapsed)
	return m, nil
}

// advance shows the next trace step. Steps are replayed strictly in order;
// after the last one the path appears.
func (m Model) advance() (Model, tea.Cmd) {
	step := m.trace[m.frame]
	if len(step) > 0 {
		cur := step[0]
		m.current = &cur
		m.expanded[cur] = true
		m.frontier = step[1:]
	}
	m.frame++
	if m.frame < len(m.trace) {
		return m, frameCmd(m.cfg.StepInterval(), m.generation)
	}
	path := m.pending
	m.clearTrace()
	m.finish(path, 0)
	return m, nil
}

func (m *Model) finish(path []grid.Position, elapsed time.Duration) {
	m.world.SetPath(path)
	if len(path) == 0 {
		m.pathLen = 0
		m.state.Play(sound.UNREACHABLE)
		m.setStatus("Goal unreachable", "unreachable")
		return
	}
	m.pathLen = len(path) - 1
	m.state.Play(sound.FOUND)
	text := fmt.Sprintf("Path found: %d steps", m.pathLen)
	if elapsed > 0 {
		text += fmt.Sprintf(" in %v", elapsed.Round(time.Microsecond))
	}
	m.setStatus(text, "found")
}

func (m *Model) save() {
	if err := m.state.Save(); err != nil {
		log.Printf("[State] Warning: %v", err)
	}
}

func (m *Model) setStatus(text, kind string) {
	m.status = text
	m.statusStyle = kind
}

func (m Model) mode() search.Mode {
	mode, err := search.ParseMode(m.state.Mode)
	if err != nil {
		return search.Uniform
	}
	return mode
}

// Busy reports whether a search or its animation is in progress.
func (m Model) Busy() bool {
	return m.busy || m.trace != nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

const footer = "←↓↑→/hjkl move, enter search, b mode, t trace, n new, s settings, ? help, q quit"

func (m Model) View() string {
	ov := render.Overlay{
		Path:     m.world.Path(),
		Frontier: m.frontier,
		Expanded: m.expanded,
		Current:  m.current,
	}
	gridView := render.Grid(m.world.Snapshot(), ov, m.palette)
	width := max(m.world.Cols()*render.CellWidth, len([]rune(footer)))
	height := m.world.Rows() + headerRows
	return render.Page(m.header(), gridView, footer+"\n"+m.statusLine(), width, height, m.termWidth, m.termHeight)
}

func (m Model) header() string {
	var b strings.Builder
	audio := "on"
	if m.state.Mute {
		audio = "muted"
	}
	b.WriteString(style.Header.Render(fmt.Sprintf("Mode: %s  Engine: %s  Trace: %s  Sound: %s", m.mode(), m.engine.Name(), onOff(m.state.Trace), audio)))
	b.WriteString("\n")
	last := "-"
	if m.pathLen >= 0 {
		last = fmt.Sprintf("%d", m.pathLen)
	}
	b.WriteString(style.Counter.Render(fmt.Sprintf("Grid #%d  Path: %s  Expanded: %d  Searches: %d  Found: %d  Unreachable: %d  Goals: %d",
		m.world.Layout(), last, m.expandedLen, m.state.Searches, m.state.Found, m.state.Unreachable, m.state.GoalsReached)))
	return b.String()
}

func (m Model) statusLine() string {
	switch m.statusStyle {
	case "found":
		return style.Found.Render(m.status)
	case "unreachable", "error":
		return style.Unreachable.Render(m.status)
	case "busy":
		return style.Busy.Render(m.status)
	}
	return m.status
}
