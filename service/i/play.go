package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/google/uuid"
)

// PlayManager runs single-player sessions: moves, hints, the clock and level progression.
type PlayManager interface {
	// Start opens a session on a level and returns it with a token bound to its ID.
	Start(ctx context.Context, d level.Difficulty, index int) (*game.Session, string, error)
	Get(ctx context.Context, id uuid.UUID) (*game.Session, error)
	Move(ctx context.Context, id uuid.UUID, d maze.Direction) (*game.Session, maze.MoveResult, error)
	Hint(ctx context.Context, id uuid.UUID) (*game.Session, []maze.CellPosition, error)
	Pause(ctx context.Context, id uuid.UUID) (*game.Session, error)
	Resume(ctx context.Context, id uuid.UUID) (*game.Session, error)
	Restart(ctx context.Context, id uuid.UUID) (*game.Session, error)
	Next(ctx context.Context, id uuid.UUID) (*game.Session, error)
	SetDifficulty(ctx context.Context, id uuid.UUID, d level.Difficulty) (*game.Session, error)

	// End discards the session. Ending an unknown session is not an error.
	End(ctx context.Context, id uuid.UUID) error
}
