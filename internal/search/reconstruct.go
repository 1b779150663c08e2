package search

import "github.com/vinser/gridwalker/internal/grid"

// predecessorPath rebuilds the path from the cameFrom map. last is the
// finalized cell the goal was discovered from.
func predecessorPath(cameFrom map[grid.Position]grid.Position, start, last, goal grid.Position) []grid.Position {
	path := []grid.Position{goal, last}
	for current := last; current != start; {
		previous, ok := cameFrom[current]
		if !ok {
			return nil
		}
		path = append(path, previous)
		current = previous
	}
	reverse(path)
	return path
}

// cheapestNeighborPath walks back from the goal to the finalized neighbour
// with the strictly lowest cost until it reaches the start. Finalized costs
// are exact distances, so every step lowers the cost by one.
func cheapestNeighborPath(finalized map[grid.Position]Cost, start, goal grid.Position) []grid.Position {
	var path []grid.Position
	current := goal
	for current != start {
		path = append(path, current)
		best := Infinite
		var next grid.Position
		for _, d := range neighbourOffsets {
			n := grid.Position{X: current.X - d.X, Y: current.Y - d.Y}
			if c, ok := finalized[n]; ok && c < best {
				best = c
				next = n
			}
		}
		if best == Infinite {
			return nil
		}
		current = next
	}
	path = append(path, start)
	reverse(path)
	return path
}

func reverse(path []grid.Position) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
