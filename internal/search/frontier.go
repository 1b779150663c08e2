package search

import (
	"container/heap"
	"math"
	"sort"

	"github.com/vinser/gridwalker/internal/grid"
)

// Cost is the number of unit steps from the start.
type Cost int

// Infinite is the cost of stepping onto a wall.
const Infinite Cost = math.MaxInt

// entry is a frontier item. rank is the priority key: the cost itself for
// uniform search, cost plus heuristic for best-first.
type entry struct {
	cost Cost
	rank Cost
	pos  grid.Position
	from grid.Position
	root bool
}

// before orders entries by rank, then position, then origin.
func (e entry) before(o entry) bool {
	if e.rank != o.rank {
		return e.rank < o.rank
	}
	if e.pos != o.pos {
		return e.pos.Less(o.pos)
	}
	return e.from.Less(o.from)
}

// frontier implements heap.Interface. Membership is never checked on push;
// duplicates are dropped at pop time.
type frontier []entry

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].before(f[j]) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(entry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

func (f *frontier) push(e entry) { heap.Push(f, e) }
func (f *frontier) pop() entry   { return heap.Pop(f).(entry) }

// live holds, for every position waiting in the frontier with a finite
// cost, the entry that will pop first. Walls and finalized positions are
// never in it.
type live map[grid.Position]entry

func (l live) add(e entry) {
	if e.cost == Infinite {
		return
	}
	if best, ok := l[e.pos]; !ok || e.before(best) {
		l[e.pos] = e
	}
}

// pending lists the live positions in pop order.
func (l live) pending() []grid.Position {
	entries := make([]entry, 0, len(l))
	for _, e := range l {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].before(entries[j]) })
	out := make([]grid.Position, len(entries))
	for i, e := range entries {
		out[i] = e.pos
	}
	return out
}
