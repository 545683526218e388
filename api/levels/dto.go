// Package levelsapi exposes the generated levels and stateless shortest paths over HTTP.
package levelsapi

import (
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
)

// DifficultyResponse describes one difficulty and its coefficients.
type DifficultyResponse struct {
	Name    string  `json:"name"`
	Scale   float64 `json:"scale"`
	TimeMul float64 `json:"time_mul"`
	Hint    int     `json:"hint"`
}

// LevelSummaryResponse is the level-select view of a level.
type LevelSummaryResponse struct {
	Index      int `json:"index"`
	Cols       int `json:"cols"`
	Rows       int `json:"rows"`
	TimeBudget int `json:"time_budget"`
}

// LevelResponse is the full description of a level.
// Walls holds one 4-bit mask per cell in row-major order; bit 0 is north, 1 east, 2 south, 3 west.
type LevelResponse struct {
	Index      int               `json:"index"`
	Difficulty string            `json:"difficulty"`
	Cols       int               `json:"cols"`
	Rows       int               `json:"rows"`
	TimeBudget int               `json:"time_budget"`
	Seed       int64             `json:"seed"`
	Start      maze.CellPosition `json:"start"`
	Goal       maze.CellPosition `json:"goal"`
	Walls      []int             `json:"walls"`
}

// PathQuery selects the cell a path starts from; the level start when omitted.
type PathQuery struct {
	FromRow *int `form:"from_row"`
	FromCol *int `form:"from_col"`
}

// PathResponse is a shortest path from a cell to the goal.
type PathResponse struct {
	From  maze.CellPosition   `json:"from"`
	Steps int                 `json:"steps"`
	Path  []maze.CellPosition `json:"path"`
}

func newLevelSummary(l *level.Level) LevelSummaryResponse {
	dims := l.Dimensions()
	return LevelSummaryResponse{
		Index:      l.Index(),
		Cols:       dims.Cols,
		Rows:       dims.Rows,
		TimeBudget: dims.TimeBudget,
	}
}

func newLevelResponse(l *level.Level) LevelResponse {
	dims := l.Dimensions()
	masks := l.Grid().Masks()
	walls := make([]int, len(masks))
	for i, m := range masks {
		walls[i] = int(m)
	}

	return LevelResponse{
		Index:      l.Index(),
		Difficulty: l.Difficulty().String(),
		Cols:       dims.Cols,
		Rows:       dims.Rows,
		TimeBudget: dims.TimeBudget,
		Seed:       l.Seed(),
		Start:      l.Start(),
		Goal:       l.Goal(),
		Walls:      walls,
	}
}
