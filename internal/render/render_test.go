package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/theme"
)

func TestGridSize(t *testing.T) {
	g, err := grid.Parse(
		"P.#..",
		"..#.G",
		".....",
	)
	if err != nil {
		t.Fatal(err)
	}
	out := Grid(g, Overlay{}, theme.Mix(0))
	if h := lipgloss.Height(out); h != 3 {
		t.Errorf("height = %d, want 3", h)
	}
	if w := lipgloss.Width(out); w != 5*CellWidth {
		t.Errorf("width = %d, want %d", w, 5*CellWidth)
	}
	for _, glyph := range []string{glyphs[kWall], glyphs[kGoal], glyphs[kPlayer]} {
		if !strings.Contains(out, glyph) {
			t.Errorf("output lacks %q", glyph)
		}
	}
}

func TestOverlayKeepsLandmarks(t *testing.T) {
	g, _ := grid.Parse("P.G")
	path := []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	out := Grid(g, Overlay{Path: path}, theme.Mix(1))
	if strings.Count(out, glyphs[kPath]) != 1 {
		t.Errorf("path drawn over player or goal: %q", out)
	}
	if !strings.Contains(out, glyphs[kPlayer]) || !strings.Contains(out, glyphs[kGoal]) {
		t.Errorf("player or goal hidden: %q", out)
	}
}

func TestOverlayOutOfBounds(t *testing.T) {
	g, _ := grid.Parse("P.", ".G")
	cur := grid.Position{X: 5, Y: 5}
	Grid(g, Overlay{Frontier: []grid.Position{{X: -1, Y: 0}}, Current: &cur}, theme.Mix(0))
}

func TestPage(t *testing.T) {
	out := Page("Title", "body", "footer", 20, 10, 0, 0)
	if lipgloss.Height(out) != 10 {
		t.Errorf("height = %d, want 10", lipgloss.Height(out))
	}
	for _, want := range []string{"Title", "body", "footer", strings.Repeat("/", 20)} {
		if !strings.Contains(out, want) {
			t.Errorf("page lacks %q", want)
		}
	}
}
