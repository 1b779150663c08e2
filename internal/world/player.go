package world

import "github.com/vinser/gridwalker/internal/grid"

// Player represents the explorer on the grid.
type Player struct {
	home      grid.Position
	position  grid.Position
	direction grid.Direction
	steps     int
}

// NewPlayer returns a player standing at home.
func NewPlayer(home grid.Position) *Player {
	return &Player{
		home:      home,
		position:  home,
		direction: grid.No,
	}
}

// Home returns the position the player was placed at.
func (p *Player) Home() grid.Position {
	return p.home
}

// Pos returns the player's current position.
func (p *Player) Pos() grid.Position {
	return p.position
}

// Dir returns the direction of the last move attempt.
func (p *Player) Dir() grid.Direction {
	return p.direction
}

// Steps returns how many moves the player made since placement.
func (p *Player) Steps() int {
	return p.steps
}

func (p *Player) moveTo(pos grid.Position) {
	p.position = pos
	p.steps++
}

// KeyDirection maps a movement key to a direction. Other keys give grid.No.
func KeyDirection(key string) grid.Direction {
	switch key {
	case "up", "k", "K":
		return grid.Up
	case "down", "j", "J":
		return grid.Down
	case "left", "h", "H":
		return grid.Left
	case "right", "l", "L":
		return grid.Right
	}
	return grid.No
}
