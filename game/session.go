/*
Package game holds the rules of a single-player play session on top of a level:
the player's position, the hint allowance, the time budget and the level progression.

A Session is plain data so it can be stored anywhere; every rule takes the current time
explicitly and the level it operates on, rebuilt from the session's level snapshot.
*/
package game

import (
	"errors"
	"time"

	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/google/uuid"
)

// Status is the phase a session is in.
type Status string

const (
	StatusPlaying   Status = "playing"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusTimeUp    Status = "time_up"
)

// Session-related errors.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNotPlaying        = errors.New("session is not in play")
	ErrNotPaused         = errors.New("session is not paused")
	ErrTimeUp            = errors.New("time is up")
	ErrNoHintsLeft       = errors.New("no hints left")
	ErrLevelNotCompleted = errors.New("level is not completed")
	ErrLastLevel         = errors.New("already on the last level")
)

// Session is one player's run through a level.
type Session struct {
	ID         uuid.UUID         `json:"id"`
	Level      level.Snapshot    `json:"level"`
	Position   maze.CellPosition `json:"position"`
	Moves      int               `json:"moves"`
	HintsLeft  int               `json:"hints_left"`
	Status     Status            `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	Deadline   time.Time         `json:"deadline"`
	PausedAt   *time.Time        `json:"paused_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

// New starts a session at the level's start cell with a full hint allowance and time budget.
func New(id uuid.UUID, lvl *level.Level, now time.Time) *Session {
	s := &Session{ID: id}
	s.reset(lvl, now)
	return s
}

// LoadLevel rebuilds the session's level, including its cached hint.
func (s *Session) LoadLevel() (*level.Level, error) {
	return level.Restore(s.Level)
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	if s.Level.Hint != nil {
		c.Level.Hint = append([]maze.CellPosition(nil), s.Level.Hint...)
	}
	if s.PausedAt != nil {
		pausedAt := *s.PausedAt
		c.PausedAt = &pausedAt
	}
	if s.FinishedAt != nil {
		finishedAt := *s.FinishedAt
		c.FinishedAt = &finishedAt
	}
	return &c
}

// Remaining returns the time left on the clock at now. A paused or finished session
// reports the time that was left when it stopped.
func (s *Session) Remaining(now time.Time) time.Duration {
	var left time.Duration
	switch {
	case s.PausedAt != nil:
		left = s.Deadline.Sub(*s.PausedAt)
	case s.FinishedAt != nil:
		left = s.Deadline.Sub(*s.FinishedAt)
	default:
		left = s.Deadline.Sub(now)
	}
	return max(left, 0)
}

// Refresh moves a playing session past its deadline into StatusTimeUp and returns the status.
func (s *Session) Refresh(now time.Time) Status {
	_ = s.checkClock(now)
	return s.Status
}

// Move attempts a single step in direction d.
// Blocked moves are not errors; they leave the position and the move counter unchanged.
func (s *Session) Move(lvl *level.Level, d maze.Direction, now time.Time) (maze.MoveResult, error) {
	if err := s.ensurePlaying(now); err != nil {
		return maze.MoveResult{}, err
	}

	res, err := lvl.Move(s.Position, d)
	if err != nil {
		return maze.MoveResult{}, err
	}

	if res.Moved() {
		s.Position = res.To
		s.Moves++
	}
	if res.Outcome == maze.GoalReached {
		s.finish(StatusCompleted, now)
	}
	return res, nil
}

// Hint spends one hint on the shortest path from the current position to the goal.
// Nothing is spent when the path cannot be computed.
func (s *Session) Hint(lvl *level.Level, now time.Time) ([]maze.CellPosition, error) {
	if err := s.ensurePlaying(now); err != nil {
		return nil, err
	}
	if s.HintsLeft <= 0 {
		return nil, ErrNoHintsLeft
	}

	path, err := lvl.RequestHint(s.Position)
	s.Level = lvl.Snapshot()
	if err != nil {
		return nil, err
	}

	s.HintsLeft--
	return path, nil
}

// Pause stops the clock.
func (s *Session) Pause(now time.Time) error {
	if err := s.ensurePlaying(now); err != nil {
		return err
	}
	s.Status = StatusPaused
	s.PausedAt = &now
	return nil
}

// Resume restarts the clock, extending the deadline by the time spent paused.
func (s *Session) Resume(now time.Time) error {
	if s.Status != StatusPaused || s.PausedAt == nil {
		return ErrNotPaused
	}
	s.Deadline = s.Deadline.Add(now.Sub(*s.PausedAt))
	s.PausedAt = nil
	s.Status = StatusPlaying
	return nil
}

// Restart reloads the session's level and starts it over.
func (s *Session) Restart(lvl *level.Level, now time.Time) error {
	if err := lvl.Reload(); err != nil {
		return err
	}
	s.reset(lvl, now)
	return nil
}

// Next advances a completed session to the following level.
func (s *Session) Next(now time.Time) (*level.Level, error) {
	if s.Status != StatusCompleted {
		return nil, ErrLevelNotCompleted
	}
	if s.Level.Index+1 >= level.NumLevels {
		return nil, ErrLastLevel
	}

	lvl, err := level.Load(s.Level.Index+1, s.Level.Difficulty)
	if err != nil {
		return nil, err
	}
	s.reset(lvl, now)
	return lvl, nil
}

// SetDifficulty replays the current level index under difficulty d.
func (s *Session) SetDifficulty(lvl *level.Level, d level.Difficulty, now time.Time) error {
	if err := lvl.SetDifficulty(d); err != nil {
		return err
	}
	s.reset(lvl, now)
	return nil
}

func (s *Session) reset(lvl *level.Level, now time.Time) {
	s.Level = lvl.Snapshot()
	s.Position = lvl.Start()
	s.Moves = 0
	s.HintsLeft = lvl.Difficulty().Coefficients().Hint
	s.Status = StatusPlaying
	s.StartedAt = now
	s.Deadline = now.Add(time.Duration(lvl.Dimensions().TimeBudget) * time.Second)
	s.PausedAt = nil
	s.FinishedAt = nil
}

func (s *Session) ensurePlaying(now time.Time) error {
	if err := s.checkClock(now); err != nil {
		return err
	}
	if s.Status == StatusTimeUp {
		return ErrTimeUp
	}
	if s.Status != StatusPlaying {
		return ErrNotPlaying
	}
	return nil
}

// checkClock expires a playing session whose deadline has passed.
func (s *Session) checkClock(now time.Time) error {
	if s.Status == StatusPlaying && now.After(s.Deadline) {
		s.finish(StatusTimeUp, s.Deadline)
		return ErrTimeUp
	}
	return nil
}

func (s *Session) finish(status Status, at time.Time) {
	s.Status = status
	s.FinishedAt = &at
}
