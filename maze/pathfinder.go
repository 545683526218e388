package maze

import (
	"container/heap"
	"fmt"
)

// frontierEntry is a cell waiting to be expanded by FindPath.
type frontierEntry struct {
	f   int // g + Manhattan distance to the goal
	g   int // steps from the start
	pos CellPosition
}

// frontier is a min-heap of entries ordered by f, then row, then column.
type frontier []frontierEntry

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.pos.Row != b.pos.Row {
		return a.pos.Row < b.pos.Row
	}
	return a.pos.Col < b.pos.Col
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) {
	*q = append(*q, x.(frontierEntry))
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}

// FindPath returns the shortest path from start to goal, both included.
//
// The search is A* with the Manhattan distance as heuristic, which is consistent for
// unit-cost orthogonal steps, so the first time the goal leaves the frontier its path
// is optimal. Entries with equal f are taken in (row, col) order, which makes the
// chosen path reproducible. ErrNoPath is returned when the cells are disconnected.
func FindPath(g *Grid, start, goal CellPosition) ([]CellPosition, error) {
	if !g.InBound(start) || !g.InBound(goal) {
		return nil, fmt.Errorf("%w: path %s -> %s in %dx%d grid", ErrOutOfBounds, start, goal, g.rows, g.cols)
	}

	size := g.rows * g.cols
	gScore := make([]int, size)
	cameFrom := make([]int, size)
	for i := range gScore {
		gScore[i] = -1
		cameFrom[i] = -1
	}

	open := &frontier{}
	gScore[g.index(start)] = 0
	heap.Push(open, frontierEntry{f: manhattan(start, goal), g: 0, pos: start})

	for open.Len() > 0 {
		current := heap.Pop(open).(frontierEntry)
		if current.pos == goal {
			return g.reconstruct(cameFrom, goal), nil
		}

		currentIdx := g.index(current.pos)
		if current.g > gScore[currentIdx] {
			// superseded by a cheaper entry for the same cell
			continue
		}

		for _, d := range directions {
			if !canPass(g, current.pos, d) {
				continue
			}
			next := current.pos.Neighbor(d)
			nextIdx := g.index(next)
			tentative := current.g + 1
			if gScore[nextIdx] == -1 || tentative < gScore[nextIdx] {
				gScore[nextIdx] = tentative
				cameFrom[nextIdx] = currentIdx
				heap.Push(open, frontierEntry{f: tentative + manhattan(next, goal), g: tentative, pos: next})
			}
		}
	}

	return nil, fmt.Errorf("%w: %s -> %s", ErrNoPath, start, goal)
}

// reconstruct walks the predecessor links back from goal and returns the path start-first.
func (g *Grid) reconstruct(cameFrom []int, goal CellPosition) []CellPosition {
	path := []CellPosition{goal}
	for idx := cameFrom[g.index(goal)]; idx != -1; idx = cameFrom[idx] {
		path = append(path, CellPosition{Row: idx / g.cols, Col: idx % g.cols})
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
