package maze

import "fmt"

// Outcome classifies the result of a single move attempt.
type Outcome uint8

const (
	Blocked     Outcome = iota // A wall or the grid edge is in the way.
	Moved                      // The move went through.
	GoalReached                // The move went through and landed on the goal.
)

var outcomeNames = [...]string{
	Blocked:     "blocked",
	Moved:       "moved",
	GoalReached: "goal_reached",
}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// MoveResult is the outcome of a move attempt and the cell the mover ends up in.
type MoveResult struct {
	Outcome Outcome      `json:"outcome"`
	To      CellPosition `json:"to"`
}

// Moved reports whether the position changed.
func (r MoveResult) Moved() bool {
	return r.Outcome != Blocked
}

// Step validates a single move from one cell in direction d.
// A move off the grid or through a wall is Blocked and leaves the mover in place;
// a legal move that lands on goal is GoalReached. The grid is never modified.
func Step(g *Grid, from CellPosition, d Direction, goal CellPosition) (MoveResult, error) {
	if !g.InBound(from) {
		return MoveResult{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, from, g.rows, g.cols)
	}
	if !d.Valid() {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}

	if !canPass(g, from, d) {
		return MoveResult{Outcome: Blocked, To: from}, nil
	}

	to := from.Neighbor(d)
	if to == goal {
		return MoveResult{Outcome: GoalReached, To: to}, nil
	}
	return MoveResult{Outcome: Moved, To: to}, nil
}

// canPass reports whether a step from pos in direction d stays inside the grid
// and crosses no wall. pos must be in bounds.
func canPass(g *Grid, pos CellPosition, d Direction) bool {
	return g.InBound(pos.Neighbor(d)) && !g.wall(pos, d)
}
