// Package world owns the mutable grid-world: wall layout, player and goal.
// The search engine only ever sees immutable snapshots of it.
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vinser/gridwalker/internal/grid"
)

var ErrNoRoom = errors.New("no empty cell left")

// World is a grid with a player walking toward a goal.
type World struct {
	// size asked for; a maze may use a smaller odd one
	wantCols int
	wantRows int
	cols     int
	rows     int
	gen      Generator
	seed     int64
	rng      *rand.Rand
	cells    [][]grid.Cell // walls and empty cells only, no overlays
	player   *Player
	goal     grid.Position
	path     []grid.Position
	layout   int
}

// MoveResult describes the outcome of a single move.
type MoveResult struct {
	Moved   bool // the player changed cell
	Bumped  bool // the move hit a wall or the grid edge
	Reached bool // the player stepped onto the goal and a new layout was made
}

// New creates a world with the first layout already generated. A zero seed
// picks one from the clock.
func New(cols, rows int, gen Generator, seed int64) (*World, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("grid %dx%d: %w", cols, rows, grid.ErrEmptyGrid)
	}
	if _, err := ParseGenerator(string(gen)); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		wantCols: cols,
		wantRows: rows,
		gen:      gen,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
	}
	if err := w.Regenerate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Regenerate builds a new layout, places player and goal and forgets the path.
func (w *World) Regenerate() error {
	w.path = nil
	w.layout++
	switch w.gen {
	case GenMaze:
		cells, start, end, err := mazeCells(w.rng.Int63(), w.wantCols, w.wantRows)
		if err != nil {
			return err
		}
		w.cells = cells
		w.rows, w.cols = len(cells), len(cells[0])
		w.player = NewPlayer(start)
		w.goal = end
		return nil
	default:
		w.cols, w.rows = w.wantCols, w.wantRows
		w.cells = blockCells(w.rng, w.cols, w.rows)
	}

	home, err := w.RandomEmpty()
	if err != nil {
		return err
	}
	w.player = NewPlayer(home)
	goal, err := w.RandomEmpty(home)
	if errors.Is(err, ErrNoRoom) {
		// A single free cell: player and goal share it.
		goal, err = home, nil
	}
	w.goal = goal
	return err
}

// RandomEmpty picks a random empty cell not listed in exclude. It tries
// random cells first and falls back to a full scan.
func (w *World) RandomEmpty(exclude ...grid.Position) (grid.Position, error) {
	free := func(p grid.Position) bool {
		if w.cells[p.Y][p.X] != grid.Empty {
			return false
		}
		for _, e := range exclude {
			if p == e {
				return false
			}
		}
		return true
	}
	for try := 0; try < 4*w.cols*w.rows; try++ {
		p := grid.Position{X: w.rng.Intn(w.cols), Y: w.rng.Intn(w.rows)}
		if free(p) {
			return p, nil
		}
	}
	var candidates []grid.Position
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			if p := (grid.Position{X: x, Y: y}); free(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return grid.Position{}, ErrNoRoom
	}
	return candidates[w.rng.Intn(len(candidates))], nil
}

// Move tries to step the player one cell in direction d.
func (w *World) Move(d grid.Direction) (MoveResult, error) {
	if d == grid.No {
		return MoveResult{}, nil
	}
	w.player.direction = d
	next := w.player.Pos().Move(d)
	if next.X < 0 || next.X >= w.cols || next.Y < 0 || next.Y >= w.rows || w.cells[next.Y][next.X] == grid.Wall {
		return MoveResult{Bumped: true}, nil
	}
	w.player.moveTo(next)
	w.path = nil
	if next != w.goal {
		return MoveResult{Moved: true}, nil
	}
	return MoveResult{Moved: true, Reached: true}, w.Regenerate()
}

// Snapshot returns an immutable copy of the grid with GOAL and PLAYER codes
// set. The player wins when both share a cell.
func (w *World) Snapshot() *grid.Grid {
	cells := make([][]grid.Cell, w.rows)
	for y, row := range w.cells {
		cells[y] = append([]grid.Cell(nil), row...)
	}
	cells[w.goal.Y][w.goal.X] = grid.Goal
	p := w.player.Pos()
	cells[p.Y][p.X] = grid.Player
	return grid.MustNew(cells)
}

// Cols returns the grid width.
func (w *World) Cols() int { return w.cols }

// Rows returns the grid height.
func (w *World) Rows() int { return w.rows }

// Generator returns the layout generator in use.
func (w *World) Generator() Generator { return w.gen }

// SetGenerator switches the generator; the next Regenerate uses it.
func (w *World) SetGenerator(gen Generator) { w.gen = gen }

// Seed returns the seed the world was created with.
func (w *World) Seed() int64 { return w.seed }

// Layout counts the layouts generated so far, starting at 1.
func (w *World) Layout() int { return w.layout }

func (w *World) Player() *Player { return w.player }

func (w *World) Goal() grid.Position { return w.goal }

// Path returns the last path stored with SetPath.
func (w *World) Path() []grid.Position { return w.path }

// SetPath stores a search result for display.
func (w *World) SetPath(path []grid.Position) { w.path = path }
