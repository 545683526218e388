package i

import (
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
)

// LevelProvider serves the pre-generated, read-only levels of every difficulty.
type LevelProvider interface {
	// Level returns one level. The result is shared and must not be mutated.
	Level(d level.Difficulty, index int) (*level.Level, error)

	// Levels returns every level of a difficulty in index order.
	Levels(d level.Difficulty) ([]*level.Level, error)

	// Path returns the shortest path from a cell to the level's goal without touching any hint state.
	Path(d level.Difficulty, index int, from maze.CellPosition) ([]maze.CellPosition, error)
}
