package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/google/uuid"
)

// SessionStore persists play sessions for the lifetime of a run.
type SessionStore interface {
	// Save inserts or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get returns a copy of the session, or game.ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*game.Session, error)

	// Update loads the session, applies fn and stores the result while holding the session's lock.
	// Nothing is stored when fn returns an error; that error is returned unchanged.
	Update(ctx context.Context, id uuid.UUID, fn func(*game.Session) error) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
