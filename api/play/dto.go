// Package playapi exposes play sessions over HTTP.
package playapi

import (
	"fmt"
	"math"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
)

// StartRequest opens a session on a level.
type StartRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Level      *int   `json:"level" binding:"required"`
}

// MoveRequest moves the player one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// DifficultyRequest switches the session's difficulty.
type DifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// SessionResponse is the client view of a session.
type SessionResponse struct {
	ID         string              `json:"id"`
	Difficulty string              `json:"difficulty"`
	Level      int                 `json:"level"`
	Cols       int                 `json:"cols"`
	Rows       int                 `json:"rows"`
	Position   maze.CellPosition   `json:"position"`
	Start      maze.CellPosition   `json:"start"`
	Goal       maze.CellPosition   `json:"goal"`
	Moves      int                 `json:"moves"`
	HintsLeft  int                 `json:"hints_left"`
	HintsUsed  int                 `json:"hints_used"`
	Hint       []maze.CellPosition `json:"hint,omitempty"`
	Status     string              `json:"status"`
	Remaining  int                 `json:"remaining_seconds"`
	Deadline   time.Time           `json:"deadline"`
}

// StartResponse carries the new session and the token that unlocks it.
type StartResponse struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
}

// MoveResponse reports a move attempt.
type MoveResponse struct {
	Outcome string          `json:"outcome"`
	Session SessionResponse `json:"session"`
}

// HintResponse carries the hint path from the player's cell to the goal.
type HintResponse struct {
	Path    []maze.CellPosition `json:"path"`
	Session SessionResponse     `json:"session"`
}

func newSessionResponse(s *game.Session, now time.Time) (SessionResponse, error) {
	dims, err := level.Size(s.Level.Index, s.Level.Difficulty)
	if err != nil {
		// A stored session whose level cannot be sized is an internal fault, not bad input.
		return SessionResponse{}, fmt.Errorf("describing session %s: %v", s.ID, err)
	}

	return SessionResponse{
		ID:         s.ID.String(),
		Difficulty: s.Level.Difficulty.String(),
		Level:      s.Level.Index,
		Cols:       dims.Cols,
		Rows:       dims.Rows,
		Position:   s.Position,
		Start:      maze.CellPosition{Row: 0, Col: 0},
		Goal:       maze.CellPosition{Row: dims.Rows - 1, Col: dims.Cols - 1},
		Moves:      s.Moves,
		HintsLeft:  s.HintsLeft,
		HintsUsed:  s.Level.HintsUsed,
		Hint:       s.Level.Hint,
		Status:     string(s.Status),
		Remaining:  int(math.Ceil(s.Remaining(now).Seconds())),
		Deadline:   s.Deadline,
	}, nil
}
