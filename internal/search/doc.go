// Package search finds shortest paths on a 4-connected occupancy grid.
//
// The engine runs a uniform-cost (Dijkstra) search with a (cost, position)
// priority key, lazy deletion of stale frontier entries and early exit as soon
// as the goal shows up among the neighbours of an expanded cell. A best-first
// variant adds the Manhattan distance to the goal to the priority key.
//
// It exposes two entry points:
//
//   - FindPath: the bare contract. No validation, empty path when unreachable.
//   - Search: validates its input, takes options and returns a Result with
//     statistics and an optional exploration trace.
//
// All state lives in the call; concurrent searches never share anything.
package search
