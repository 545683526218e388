package level

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/maze-runner/maze"
)

const (
	// NumLevels is the number of levels per difficulty.
	NumLevels = 50

	baseSize      = 15
	levelsPerStep = 5   // levels between one-cell size increments
	rowAspect     = 0.8 // rows relative to cols
	cellsPerSec   = 6   // cells granted per second of time budget

	minCols = 8
	minRows = 6
)

// Dimensions are the grid size and time budget of a level.
type Dimensions struct {
	Cols       int `json:"cols"`
	Rows       int `json:"rows"`
	TimeBudget int `json:"time_budget"` // seconds
}

// Size maps a level index and difficulty to grid dimensions and a time budget.
func Size(levelIndex int, d Difficulty) (Dimensions, error) {
	if levelIndex < 0 || levelIndex >= NumLevels {
		return Dimensions{}, fmt.Errorf("%w: %d", ErrInvalidLevel, levelIndex)
	}
	if !d.Valid() {
		return Dimensions{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, uint8(d))
	}

	c := d.Coefficients()
	side := float64(baseSize+levelIndex/levelsPerStep) * c.Scale

	cols := clamp(int(math.Round(side)), minCols, maze.MaxCols)
	rows := clamp(int(math.Round(side*rowAspect)), minRows, maze.MaxRows)
	budget := int(math.Round(float64(cols*rows) / cellsPerSec * c.TimeMul))

	return Dimensions{Cols: cols, Rows: rows, TimeBudget: budget}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
