package grid

import "fmt"

// Position represents coordinates on the grid: X is the column, Y the row.
type Position struct {
	X, Y int
}

// Less orders positions lexicographically, by X first and then by Y.
func (p Position) Less(q Position) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Move returns the position one step away in direction d.
func (p Position) Move(d Direction) Position {
	switch d {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return p
}

// Adjacent reports whether p and q are 4-connected neighbours.
func (p Position) Adjacent(q Position) bool {
	return Manhattan(p, q) == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns the Manhattan distance between two positions.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction represents movement direction.
type Direction int

const (
	No Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}
