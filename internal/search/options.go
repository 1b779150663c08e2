package search

import (
	"fmt"
	"strings"
)

// Mode selects the priority key of the frontier.
type Mode int

const (
	// Uniform orders the frontier by path cost alone.
	Uniform Mode = iota
	// BestFirst adds the Manhattan distance to the goal to the path cost.
	BestFirst
)

func (m Mode) String() string {
	switch m {
	case Uniform:
		return "uniform"
	case BestFirst:
		return "best-first"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "dijkstra", "ucs":
		return Uniform, nil
	case "best-first", "bestfirst", "astar", "a*", "heuristic":
		return BestFirst, nil
	}
	return Uniform, fmt.Errorf("unknown search mode %q", s)
}

// Reconstruction selects how the path is rebuilt once the goal is found.
type Reconstruction int

const (
	// Predecessor follows the predecessor recorded when each cell was finalized.
	Predecessor Reconstruction = iota
	// CheapestNeighbor walks back from the goal, always stepping to the
	// finalized neighbour with the lowest cost. Ties go to the first neighbour
	// in down, right, up, left order, which need not be the discovery route.
	CheapestNeighbor
)

func (r Reconstruction) String() string {
	switch r {
	case Predecessor:
		return "predecessor"
	case CheapestNeighbor:
		return "cheapest-neighbor"
	}
	return fmt.Sprintf("reconstruction(%d)", int(r))
}

// ParseReconstruction accepts the names printed by Reconstruction.String.
func ParseReconstruction(s string) (Reconstruction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "predecessor", "parent":
		return Predecessor, nil
	case "cheapest-neighbor", "cheapest-neighbour", "cheapest":
		return CheapestNeighbor, nil
	}
	return Predecessor, fmt.Errorf("unknown reconstruction %q", s)
}

// Options defines parameters for the search.
type Options struct {
	Mode           Mode
	Reconstruction Reconstruction
	Trace          bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMode sets the priority key.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithReconstruction sets the path reconstruction strategy.
func WithReconstruction(r Reconstruction) Option {
	return func(o *Options) { o.Reconstruction = r }
}

// WithTrace records the frontier at every expansion into Result.Trace.
func WithTrace() Option {
	return func(o *Options) { o.Trace = true }
}
