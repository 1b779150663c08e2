// Package grid holds the occupancy grid snapshot shared by the world model,
// the search engine and the file exchange protocol.
package grid

import (
	"errors"
	"fmt"
)

// Cell is the code stored in every grid cell.
type Cell int8

const (
	Empty Cell = iota
	Wall
	Goal
	Player
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Goal:
		return "goal"
	case Player:
		return "player"
	}
	return fmt.Sprintf("cell(%d)", int8(c))
}

// Valid reports whether c is one of the known cell codes.
func (c Cell) Valid() bool {
	return c >= Empty && c <= Player
}

var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrEmptyGrid   = errors.New("grid has no cells")
	ErrRagged      = errors.New("grid rows differ in length")
	ErrBadCell     = errors.New("unknown cell code")
)

// Grid is an immutable rectangular snapshot of cell codes.
// Cells are stored row-major: cells[y][x].
type Grid struct {
	cols  int
	rows  int
	cells [][]Cell
}

// New copies rows into a new snapshot. Every row must have the same length
// and every code must be valid.
func New(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(rows[0])
	cells := make([][]Cell, len(rows))
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), cols, ErrRagged)
		}
		for x, c := range row {
			if !c.Valid() {
				return nil, fmt.Errorf("cell (%d,%d) = %d: %w", x, y, c, ErrBadCell)
			}
		}
		cells[y] = append([]Cell(nil), row...)
	}
	return &Grid{cols: cols, rows: len(rows), cells: cells}, nil
}

// MustNew is like New but panics on error. Meant for tests and literals.
func MustNew(rows [][]Cell) *Grid {
	g, err := New(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Parse builds a grid from text rows, one rune per cell:
// '#' wall, '.' empty, 'G' goal, 'P' player.
func Parse(lines ...string) (*Grid, error) {
	rows := make([][]Cell, len(lines))
	for y, line := range lines {
		for x, r := range []rune(line) {
			var c Cell
			switch r {
			case '.', ' ':
				c = Empty
			case '#':
				c = Wall
			case 'G':
				c = Goal
			case 'P':
				c = Player
			default:
				return nil, fmt.Errorf("rune %q at (%d,%d): %w", r, x, y, ErrBadCell)
			}
			rows[y] = append(rows[y], c)
		}
	}
	return New(rows)
}

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether p lies inside [0,cols) x [0,rows).
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// At returns the cell at the specified coordinates.
func (g *Grid) At(x, y int) (Cell, error) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return Empty, ErrOutOfBounds
	}
	return g.cells[y][x], nil
}

// Passable reports whether p is inside the grid and not a wall.
// Goal and player codes are overlays and never block.
func (g *Grid) Passable(p Position) bool {
	c, err := g.At(p.X, p.Y)
	return err == nil && c != Wall
}

// Find returns the first position holding c in row-major order.
func (g *Grid) Find(c Cell) (Position, bool) {
	for y, row := range g.cells {
		for x, v := range row {
			if v == c {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// Cells returns a copy of the cell rows.
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.rows)
	for y, row := range g.cells {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}
