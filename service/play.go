package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

const (
	// SessionClaim is the token claim carrying the session ID.
	SessionClaim = "session_id"

	defaultTokenTTL = time.Hour
)

var _ i.PlayManager = &PlayService{}

// PlayService drives play sessions stored in a SessionStore.
// It is the external driver of the level rules: it enforces the hint allowance
// and the time budget that the level itself leaves to its caller.
type PlayService struct {
	store     i.SessionStore
	tokenizer i.Tokenizer
	logger    i.Logger
	tokenTTL  time.Duration
	now       func() time.Time
}

// Config holds the dependencies of a PlayService.
type Config struct {
	Store     i.SessionStore
	Tokenizer i.Tokenizer
	Logger    i.Logger
	TokenTTL  time.Duration    // lifetime of session tokens; defaults to an hour
	Clock     func() time.Time // defaults to time.Now
}

// NewPlayService creates a PlayService from c.
func NewPlayService(c *Config) (*PlayService, error) {
	if c == nil || c.Store == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, errors.New("play service requires a store, a tokenizer and a logger")
	}

	ps := &PlayService{
		store:     c.Store,
		tokenizer: c.Tokenizer,
		logger:    c.Logger,
		tokenTTL:  c.TokenTTL,
		now:       c.Clock,
	}
	if ps.tokenTTL <= 0 {
		ps.tokenTTL = defaultTokenTTL
	}
	if ps.now == nil {
		ps.now = time.Now
	}
	return ps, nil
}

// Start implements i.PlayManager.
func (p *PlayService) Start(ctx context.Context, d level.Difficulty, index int) (*game.Session, string, error) {
	lvl, err := level.Load(index, d)
	if err != nil {
		return nil, "", err
	}

	s := game.New(uuid.New(), lvl, p.now())
	if err := p.store.Save(ctx, s); err != nil {
		p.logger.Error(fmt.Sprintf("saving session %s: %s", s.ID, err))
		return nil, "", err
	}

	token, err := p.tokenizer.Generate(map[string]interface{}{SessionClaim: s.ID.String()}, p.tokenTTL)
	if err != nil {
		p.logger.Error(fmt.Sprintf("signing token for session %s: %s", s.ID, err))
		return nil, "", err
	}

	p.logger.Info(fmt.Sprintf("started session %s on level %d (%s)", s.ID, index, d))
	return s, token, nil
}

// Get implements i.PlayManager. A session past its deadline is moved to time-up on read.
func (p *PlayService) Get(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		s.Refresh(p.now())
		return nil
	})
}

// Move implements i.PlayManager.
func (p *PlayService) Move(ctx context.Context, id uuid.UUID, d maze.Direction) (*game.Session, maze.MoveResult, error) {
	var res maze.MoveResult
	s, err := p.apply(ctx, id, func(s *game.Session) error {
		lvl, err := s.LoadLevel()
		if err != nil {
			return err
		}
		res, err = s.Move(lvl, d, p.now())
		return err
	})
	if err == nil && res.Outcome == maze.GoalReached {
		p.logger.Info(fmt.Sprintf("session %s completed level %d in %d moves", id, s.Level.Index, s.Moves))
	}
	return s, res, err
}

// Hint implements i.PlayManager.
func (p *PlayService) Hint(ctx context.Context, id uuid.UUID) (*game.Session, []maze.CellPosition, error) {
	var path []maze.CellPosition
	s, err := p.apply(ctx, id, func(s *game.Session) error {
		lvl, err := s.LoadLevel()
		if err != nil {
			return err
		}
		path, err = s.Hint(lvl, p.now())
		return err
	})
	if errors.Is(err, maze.ErrNoPath) {
		p.logger.Error(fmt.Sprintf("invariant violation: session %s has no path to the goal: %s", id, err))
	}
	return s, path, err
}

// Pause implements i.PlayManager.
func (p *PlayService) Pause(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		return s.Pause(p.now())
	})
}

// Resume implements i.PlayManager.
func (p *PlayService) Resume(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		return s.Resume(p.now())
	})
}

// Restart implements i.PlayManager.
func (p *PlayService) Restart(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		lvl, err := s.LoadLevel()
		if err != nil {
			return err
		}
		return s.Restart(lvl, p.now())
	})
}

// Next implements i.PlayManager.
func (p *PlayService) Next(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		_, err := s.Next(p.now())
		return err
	})
}

// SetDifficulty implements i.PlayManager.
func (p *PlayService) SetDifficulty(ctx context.Context, id uuid.UUID, d level.Difficulty) (*game.Session, error) {
	return p.apply(ctx, id, func(s *game.Session) error {
		lvl, err := s.LoadLevel()
		if err != nil {
			return err
		}
		return s.SetDifficulty(lvl, d, p.now())
	})
}

// End implements i.PlayManager.
func (p *PlayService) End(ctx context.Context, id uuid.UUID) error {
	if err := p.store.Delete(ctx, id); err != nil {
		p.logger.Error(fmt.Sprintf("deleting session %s: %s", id, err))
		return err
	}
	p.logger.Info(fmt.Sprintf("ended session %s", id))
	return nil
}

// apply runs op on the stored session under the store's lock.
// Running out of time is a state change, so the session is stored and returned along with ErrTimeUp;
// any other error from op leaves the stored session untouched.
func (p *PlayService) apply(ctx context.Context, id uuid.UUID, op func(*game.Session) error) (*game.Session, error) {
	var (
		updated *game.Session
		opErr   error
	)

	err := p.store.Update(ctx, id, func(s *game.Session) error {
		opErr = op(s)
		if opErr != nil && !errors.Is(opErr, game.ErrTimeUp) {
			return opErr
		}
		updated = s.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if errors.Is(opErr, game.ErrTimeUp) {
		p.logger.Info(fmt.Sprintf("session %s ran out of time on level %d", id, updated.Level.Index))
	}
	return updated, opErr
}
