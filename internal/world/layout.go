package world

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/maze"
)

// Generator names a wall layout algorithm.
type Generator string

const (
	// GenBlocks scatters rectangular wall blocks over an empty grid.
	GenBlocks Generator = "blocks"
	// GenMaze carves a maze. Its entrance and exit become player and goal.
	GenMaze Generator = "maze"
)

// Generators lists the known generators in menu order.
var Generators = []Generator{GenBlocks, GenMaze}

// ParseGenerator returns the generator with the given name.
func ParseGenerator(s string) (Generator, error) {
	switch g := Generator(strings.ToLower(strings.TrimSpace(s))); g {
	case GenBlocks, GenMaze:
		return g, nil
	}
	return "", fmt.Errorf("unknown generator %q", s)
}

const (
	// Wall blocks: one per BlockArea cells, sides in [MinBlock, MaxBlock].
	BlockArea = 25
	MinBlock  = 2
	MaxBlock  = 4

	// Maze settings
	DenWidth  = 5
	DenHeight = 3
	// Bias defines maze complexity
	Bias = 0.2
	// Smallest maze that still fits the den with a corridor around it.
	MinMazeCols = DenWidth + 4
	MinMazeRows = DenHeight + 4
)

var ErrTooSmall = errors.New("grid too small for the generator")

func emptyCells(cols, rows int) [][]grid.Cell {
	cells := make([][]grid.Cell, rows)
	for y := range cells {
		cells[y] = make([]grid.Cell, cols)
	}
	return cells
}

// blockCells fills an empty grid with cols*rows/BlockArea wall blocks. Blocks
// may overlap and never stick out of the grid.
func blockCells(rng *rand.Rand, cols, rows int) [][]grid.Cell {
	cells := emptyCells(cols, rows)
	for n := cols * rows / BlockArea; n > 0; n-- {
		w := min(MinBlock+rng.Intn(MaxBlock-MinBlock+1), cols)
		h := min(MinBlock+rng.Intn(MaxBlock-MinBlock+1), rows)
		x0 := rng.Intn(cols - w + 1)
		y0 := rng.Intn(rows - h + 1)
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				cells[y][x] = grid.Wall
			}
		}
	}
	return cells
}

// oddDown returns n or n-1, whichever is odd.
func oddDown(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// mazeCells generates a maze and converts it into wall cells. Even sizes are
// shrunk by one since the maze only has odd dimensions.
func mazeCells(seed int64, cols, rows int) (cells [][]grid.Cell, start, end grid.Position, err error) {
	cols, rows = oddDown(cols), oddDown(rows)
	if cols < MinMazeCols || rows < MinMazeRows {
		return nil, start, end, fmt.Errorf("maze %dx%d, need at least %dx%d: %w", cols, rows, MinMazeCols, MinMazeRows, ErrTooSmall)
	}
	m, err := maze.New(cols, rows, DenWidth, DenHeight)
	if err != nil {
		return nil, start, end, fmt.Errorf("maze %dx%d: %w", cols, rows, err)
	}
	m.Generate(seed, nil, nil, nil, "top", Bias)

	cells = emptyCells(m.Width(), m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			cell, ok := m.Cell(x, y)
			if !ok {
				cells[y][x] = grid.Wall
				continue
			}
			switch cell {
			case maze.Path, maze.Start, maze.End:
				cells[y][x] = grid.Empty
			default:
				cells[y][x] = grid.Wall
			}
		}
	}
	s, e := m.Start(), m.End()
	return cells, grid.Position{X: s.X, Y: s.Y}, grid.Position{X: e.X, Y: e.Y}, nil
}
