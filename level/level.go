// Package level composes the sizing policy, generator, validator and pathfinder into
// playable maze levels.
package level

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze-runner/maze"
)

var (
	ErrInvalidLevel      = errors.New("level index out of range")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Level is one maze instance: its grid, fixed start and goal, and the last hint computed for it.
// A Level is not safe for concurrent mutation; its Grid is safe to share once loaded.
type Level struct {
	index      int
	difficulty Difficulty
	dims       Dimensions
	grid       *maze.Grid
	start      maze.CellPosition
	goal       maze.CellPosition
	hint       []maze.CellPosition
	hintsUsed  int
}

// Snapshot is the part of a Level that cannot be recomputed from its index and difficulty.
type Snapshot struct {
	Index      int                 `json:"index"`
	Difficulty Difficulty          `json:"difficulty"`
	Hint       []maze.CellPosition `json:"hint,omitempty"`
	HintsUsed  int                 `json:"hints_used"`
}

// Load builds level index for difficulty d and generates its maze.
func Load(index int, d Difficulty) (*Level, error) {
	l := &Level{
		index:      index,
		difficulty: d,
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Restore rebuilds a Level from a snapshot. The grid is regenerated from the level seed
// and the cached hint state is put back.
func Restore(s Snapshot) (*Level, error) {
	l, err := Load(s.Index, s.Difficulty)
	if err != nil {
		return nil, err
	}
	if s.HintsUsed < 0 {
		return nil, fmt.Errorf("invalid snapshot: negative hint count %d", s.HintsUsed)
	}
	for _, pos := range s.Hint {
		if !l.grid.InBound(pos) {
			return nil, fmt.Errorf("invalid snapshot: hint %w", maze.ErrOutOfBounds)
		}
	}

	l.hint = append([]maze.CellPosition(nil), s.Hint...)
	l.hintsUsed = s.HintsUsed
	return l, nil
}

// Reload regenerates the grid from the level seed and clears the hint cache and counter.
// The previous grid is replaced, never modified, so earlier Grid() results stay valid.
func (l *Level) Reload() error {
	dims, err := Size(l.index, l.difficulty)
	if err != nil {
		return err
	}

	grid, err := maze.Generate(dims.Rows, dims.Cols, maze.LevelSeed(l.index))
	if err != nil {
		return fmt.Errorf("generating level %d: %w", l.index, err)
	}

	l.dims = dims
	l.grid = grid
	l.start = maze.CellPosition{Row: 0, Col: 0}
	l.goal = maze.CellPosition{Row: dims.Rows - 1, Col: dims.Cols - 1}
	l.hint = nil
	l.hintsUsed = 0
	return nil
}

// SetDifficulty switches the level to difficulty d and reloads it.
// On failure the level keeps its previous difficulty and grid.
func (l *Level) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDifficulty, uint8(d))
	}

	previous := l.difficulty
	l.difficulty = d
	if err := l.Reload(); err != nil {
		l.difficulty = previous
		return err
	}
	return nil
}

// RequestHint computes the shortest path from the given cell to the goal and caches it.
// The hint counter counts successful computations only; allowances are up to the caller.
func (l *Level) RequestHint(from maze.CellPosition) ([]maze.CellPosition, error) {
	path, err := maze.FindPath(l.grid, from, l.goal)
	if err != nil {
		l.hint = nil
		return nil, err
	}

	l.hint = path
	l.hintsUsed++
	return l.Hint(), nil
}

// Move validates a single step from a cell in direction d against the level's walls.
func (l *Level) Move(from maze.CellPosition, d maze.Direction) (maze.MoveResult, error) {
	return maze.Step(l.grid, from, d, l.goal)
}

// Snapshot captures the level's index, difficulty and hint state.
func (l *Level) Snapshot() Snapshot {
	return Snapshot{
		Index:      l.index,
		Difficulty: l.difficulty,
		Hint:       l.Hint(),
		HintsUsed:  l.hintsUsed,
	}
}

// Index returns the level index.
func (l *Level) Index() int {
	return l.index
}

// Difficulty returns the difficulty the level was sized for.
func (l *Level) Difficulty() Difficulty {
	return l.difficulty
}

// Dimensions returns the grid size and time budget.
func (l *Level) Dimensions() Dimensions {
	return l.dims
}

// Grid returns the current maze. It must not be modified.
func (l *Level) Grid() *maze.Grid {
	return l.grid
}

// Start returns the player's starting cell, always (0,0).
func (l *Level) Start() maze.CellPosition {
	return l.start
}

// Goal returns the bottom-right cell.
func (l *Level) Goal() maze.CellPosition {
	return l.goal
}

// Seed returns the generator seed of the level.
func (l *Level) Seed() int64 {
	return maze.LevelSeed(l.index)
}

// HintsUsed returns how many hints were computed since the last load.
func (l *Level) HintsUsed() int {
	return l.hintsUsed
}

// Hint returns a copy of the cached hint path, nil when there is none.
func (l *Level) Hint() []maze.CellPosition {
	if l.hint == nil {
		return nil
	}
	return append([]maze.CellPosition(nil), l.hint...)
}
