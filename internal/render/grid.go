package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/theme"
)

// CellWidth is the number of terminal columns per grid cell; two columns
// make cells roughly square.
const CellWidth = 2

// Overlay marks cells drawn on top of the grid codes.
type Overlay struct {
	Path     []grid.Position
	Frontier []grid.Position
	Expanded map[grid.Position]bool
	Current  *grid.Position // cell being expanded in a trace frame
}

type kind int

const (
	kEmpty kind = iota
	kWall
	kGoal
	kPlayer
	kPath
	kFrontier
	kExpanded
	kCurrent
)

var glyphs = map[kind]string{
	kEmpty:    "  ",
	kWall:     "▒▒",
	kGoal:     "◢◣",
	kPlayer:   "◥◤",
	kPath:     "╺╸",
	kFrontier: "··",
	kExpanded: "  ",
	kCurrent:  "<>",
}

// Grid draws the snapshot with its overlay in the palette colours. Player
// and goal always stay visible.
func Grid(g *grid.Grid, ov Overlay, p theme.Palette) string {
	kinds := make([][]kind, g.Rows())
	for y := range kinds {
		kinds[y] = make([]kind, g.Cols())
		for x := range kinds[y] {
			c, _ := g.At(x, y)
			switch c {
			case grid.Wall:
				kinds[y][x] = kWall
			case grid.Goal:
				kinds[y][x] = kGoal
			case grid.Player:
				kinds[y][x] = kPlayer
			}
		}
	}
	mark := func(pos grid.Position, k kind) {
		if !g.InBounds(pos) || kinds[pos.Y][pos.X] != kEmpty && kinds[pos.Y][pos.X] < kPath {
			return
		}
		kinds[pos.Y][pos.X] = k
	}
	for pos := range ov.Expanded {
		mark(pos, kExpanded)
	}
	for _, pos := range ov.Frontier {
		mark(pos, kFrontier)
	}
	for _, pos := range ov.Path {
		mark(pos, kPath)
	}
	if ov.Current != nil {
		mark(*ov.Current, kCurrent)
	}

	styles := map[kind]lipgloss.Style{
		kEmpty:    lipgloss.NewStyle().Background(p.Empty),
		kWall:     lipgloss.NewStyle().Background(p.Empty).Foreground(p.Wall),
		kGoal:     lipgloss.NewStyle().Background(p.Empty).Foreground(p.Goal).Bold(true),
		kPlayer:   lipgloss.NewStyle().Background(p.Empty).Foreground(p.Player).Bold(true),
		kPath:     lipgloss.NewStyle().Background(p.Empty).Foreground(p.Path).Bold(true),
		kFrontier: lipgloss.NewStyle().Background(p.Empty).Foreground(p.Frontier),
		kExpanded: lipgloss.NewStyle().Background(p.Expanded),
		kCurrent:  lipgloss.NewStyle().Background(p.Expanded).Foreground(p.Frontier).Bold(true),
	}

	var b strings.Builder
	for y, row := range kinds {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, k := range row {
			b.WriteString(styles[k].Render(glyphs[k]))
		}
	}
	return b.String()
}
