package maze

import (
	"fmt"
	"math/rand"
)

const (
	// MaxCols and MaxRows bound the grids the generator accepts.
	MaxCols = 60
	MaxRows = 48

	seedStep = 12345
)

// LevelSeed returns the generator seed for a level index.
// The same index always yields the same seed, and therefore the same maze.
func LevelSeed(levelIndex int) int64 {
	return int64(levelIndex+1) * seedStep
}

// Generate carves a perfect maze with a randomized depth-first backtracker.
//
// Starting at (0,0) it repeatedly looks at the cell on top of the stack, picks one of its
// unvisited neighbours uniformly at random, carves through to it and pushes it. Cells
// without unvisited neighbours are popped. Every cell is reached exactly once, so the
// result has rows*cols-1 passages and no cycles.
//
// Each call owns its random source, seeded with seed; equal arguments give equal grids.
func Generate(rows, cols int, seed int64) (*Grid, error) {
	if rows > MaxRows || cols > MaxCols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrInvalidDimensions, rows, cols, MaxRows, MaxCols)
	}

	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	visited := make([]bool, rows*cols)
	stack := make([]CellPosition, 0, rows*cols)
	candidates := make([]Direction, 0, len(directions))

	start := CellPosition{Row: 0, Col: 0}
	visited[g.index(start)] = true
	stack = append(stack, start)

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, d := range directions {
			next := current.Neighbor(d)
			if g.InBound(next) && !visited[g.index(next)] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		if err := g.carve(current, d); err != nil {
			return nil, err
		}
		next := current.Neighbor(d)
		visited[g.index(next)] = true
		stack = append(stack, next)
	}

	return g, nil
}
