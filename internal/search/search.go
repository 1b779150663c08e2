package search

import (
	"errors"
	"fmt"

	"github.com/vinser/gridwalker/internal/grid"
)

var (
	ErrInvalidInput = errors.New("invalid search input")
	ErrOutOfBounds  = fmt.Errorf("%w: position outside the grid", ErrInvalidInput)
	ErrBlocked      = fmt.Errorf("%w: position on a wall", ErrInvalidInput)
)

// Result contains the outcome of a search.
type Result struct {
	// Path runs from start to goal inclusive; empty when Found is false.
	Path []grid.Position
	// Cost is the number of steps in Path.
	Cost     Cost
	Expanded int
	Found    bool
	// Trace holds one step per expansion: the expanded position followed by
	// the positions still pending in the frontier. Only set WithTrace.
	Trace [][]grid.Position
}

// neighbourOffsets is the order neighbours are generated in.
var neighbourOffsets = [4]grid.Position{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// FindPath returns the shortest 4-connected path from start to goal, both
// inclusive, or an empty path when the goal cannot be reached.
// Start and goal must be inside the grid and not walls; nothing is checked.
func FindPath(g *grid.Grid, start, goal grid.Position) []grid.Position {
	return run(g, start, goal, Options{}).Path
}

// Search validates start and goal and runs the search with the given options.
// An unreachable goal is not an error: the Result has Found set to false.
func Search(g *grid.Grid, start, goal grid.Position, options ...Option) (Result, error) {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	if g == nil {
		return Result{}, fmt.Errorf("%w: nil grid", ErrInvalidInput)
	}
	for _, p := range []struct {
		name string
		pos  grid.Position
	}{{"start", start}, {"goal", goal}} {
		if !g.InBounds(p.pos) {
			return Result{}, fmt.Errorf("%s %v: %w", p.name, p.pos, ErrOutOfBounds)
		}
		if !g.Passable(p.pos) {
			return Result{}, fmt.Errorf("%s %v: %w", p.name, p.pos, ErrBlocked)
		}
	}
	return run(g, start, goal, opts), nil
}

func rank(opts Options, cost Cost, pos, goal grid.Position) Cost {
	if cost == Infinite || opts.Mode != BestFirst {
		return cost
	}
	return cost + Cost(grid.Manhattan(pos, goal))
}

func run(g *grid.Grid, start, goal grid.Position, opts Options) Result {
	if start == goal {
		return Result{Path: []grid.Position{start}, Found: true}
	}

	open := make(frontier, 0, 4*g.Cols())
	waiting := make(live)
	push := func(e entry) {
		open.push(e)
		if opts.Trace {
			waiting.add(e)
		}
	}
	push(entry{cost: 0, rank: rank(opts, 0, start, goal), pos: start, root: true})
	finalized := make(map[grid.Position]Cost)
	cameFrom := make(map[grid.Position]grid.Position)

	var res Result
	for open.Len() > 0 {
		current := open.pop()
		if _, done := finalized[current.pos]; done {
			continue
		}
		// Infinite entries sort last: only walls are left.
		if current.cost == Infinite {
			break
		}
		finalized[current.pos] = current.cost
		if !current.root {
			cameFrom[current.pos] = current.from
		}
		res.Expanded++
		if opts.Trace {
			delete(waiting, current.pos)
			step := append([]grid.Position{current.pos}, waiting.pending()...)
			res.Trace = append(res.Trace, step)
		}

		for _, d := range neighbourOffsets {
			next := grid.Position{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			if !g.InBounds(next) {
				continue
			}
			if next == goal {
				var path []grid.Position
				switch opts.Reconstruction {
				case CheapestNeighbor:
					path = cheapestNeighborPath(finalized, start, goal)
				default:
					path = predecessorPath(cameFrom, start, current.pos, goal)
				}
				if len(path) > 0 {
					res.Path = path
					res.Cost = Cost(len(path) - 1)
					res.Found = true
				}
				return res
			}
			cost := current.cost + 1
			if !g.Passable(next) {
				cost = Infinite
			}
			// Entries for finalized cells would only be dropped at pop time.
			if _, done := finalized[next]; done {
				continue
			}
			push(entry{cost: cost, rank: rank(opts, cost, next, goal), pos: next, from: current.pos})
		}
	}
	return res
}
