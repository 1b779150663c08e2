package grid

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]Cell
		wantErr error
	}{
		{"single cell", [][]Cell{{Empty}}, nil},
		{"rectangle", [][]Cell{{Empty, Wall, Goal}, {Player, Empty, Empty}}, nil},
		{"no rows", nil, ErrEmptyGrid},
		{"empty row", [][]Cell{{}}, ErrEmptyGrid},
		{"ragged", [][]Cell{{Empty, Empty}, {Empty}}, ErrRagged},
		{"bad code", [][]Cell{{Empty, Cell(7)}}, ErrBadCell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	rows := [][]Cell{{Empty, Empty}}
	g := MustNew(rows)
	rows[0][0] = Wall
	if c, _ := g.At(0, 0); c != Empty {
		t.Fatalf("snapshot changed after caller write: got %v", c)
	}
	cells := g.Cells()
	cells[0][1] = Wall
	if c, _ := g.At(1, 0); c != Empty {
		t.Fatalf("snapshot changed through Cells(): got %v", c)
	}
}

func TestAtAndPassable(t *testing.T) {
	g, err := Parse(
		"P.#",
		".#G",
	)
	if err != nil {
		t.Fatal(err)
	}
	if g.Cols() != 3 || g.Rows() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Cols(), g.Rows())
	}
	tests := []struct {
		pos      Position
		passable bool
	}{
		{Position{0, 0}, true}, // player overlay
		{Position{2, 0}, false},
		{Position{1, 1}, false},
		{Position{2, 1}, true}, // goal overlay
		{Position{-1, 0}, false},
		{Position{3, 0}, false},
		{Position{0, 2}, false},
	}
	for _, tt := range tests {
		if got := g.Passable(tt.pos); got != tt.passable {
			t.Errorf("Passable(%v) = %v, want %v", tt.pos, got, tt.passable)
		}
	}
	if _, err := g.At(5, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At(5,5) error = %v, want ErrOutOfBounds", err)
	}
}

func TestFind(t *testing.T) {
	g, _ := Parse(
		"...",
		".G.",
		"P..",
	)
	if p, ok := g.Find(Goal); !ok || p != (Position{1, 1}) {
		t.Errorf("Find(Goal) = %v, %v", p, ok)
	}
	if p, ok := g.Find(Player); !ok || p != (Position{0, 2}) {
		t.Errorf("Find(Player) = %v, %v", p, ok)
	}
	if _, ok := g.Find(Wall); ok {
		t.Error("Find(Wall) found a wall in an open grid")
	}
}

func TestPositionOrder(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{Position{0, 5}, Position{1, 0}, true},
		{Position{1, 0}, Position{0, 5}, false},
		{Position{2, 1}, Position{2, 3}, true},
		{Position{2, 3}, Position{2, 3}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMove(t *testing.T) {
	p := Position{X: 3, Y: 3}
	tests := []struct {
		dir  Direction
		want Position
	}{
		{Up, Position{3, 2}},
		{Down, Position{3, 4}},
		{Left, Position{2, 3}},
		{Right, Position{4, 3}},
		{No, Position{3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := p.Move(tt.dir); got != tt.want {
				t.Errorf("Move(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}
