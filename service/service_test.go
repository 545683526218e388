package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/infrastruture/sessionstore"
	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
	sync.Mutex
}

func (l *recordingLogger) record(level, msg string) {
	l.Lock()
	defer l.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func (l *recordingLogger) Info(msg string)    { l.record("INFO", msg) }
func (l *recordingLogger) Warning(msg string) { l.record("WARNING", msg) }
func (l *recordingLogger) Error(msg string)   { l.record("ERROR", msg) }

func (l *recordingLogger) contains(part string) bool {
	l.Lock()
	defer l.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, part) {
			return true
		}
	}
	return false
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
	err    error
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	s.claims = claims
	s.ttl = expTime
	return "signed-token", s.err
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, s.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newPlayService(t *testing.T) (*PlayService, *fakeClock, *stubTokenizer, *recordingLogger) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC)}
	tokenizer := &stubTokenizer{}
	logger := &recordingLogger{}
	ps, err := NewPlayService(&Config{
		Store:     sessionstore.NewMemorySessionStore(3600),
		Tokenizer: tokenizer,
		Logger:    logger,
		Clock:     clock.Now,
	})
	require.NoError(t, err)
	return ps, clock, tokenizer, logger
}

func directionBetween(a, b maze.CellPosition) maze.Direction {
	for _, d := range maze.Directions() {
		if a.Neighbor(d) == b {
			return d
		}
	}
	panic("cells are not adjacent")
}

func TestNewPlayService(t *testing.T) {
	_, err := NewPlayService(nil)
	assert.Error(t, err)
	_, err = NewPlayService(&Config{Store: sessionstore.NewMemorySessionStore(1)})
	assert.Error(t, err)

	ps, err := NewPlayService(&Config{
		Store:     sessionstore.NewMemorySessionStore(1),
		Tokenizer: &stubTokenizer{},
		Logger:    &recordingLogger{},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultTokenTTL, ps.tokenTTL)
	assert.NotNil(t, ps.now)
}

func TestPlayService(t *testing.T) {
	ctx := context.Background()

	t.Run("Start issues a token bound to the session", func(t *testing.T) {
		ps, _, tokenizer, logger := newPlayService(t)
		s, token, err := ps.Start(ctx, level.Normal, 0)
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, s.ID.String(), tokenizer.claims[SessionClaim])
		assert.Equal(t, defaultTokenTTL, tokenizer.ttl)
		assert.Equal(t, 2, s.HintsLeft)
		assert.True(t, logger.contains("started session"))

		got, err := ps.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("Start rejects invalid levels", func(t *testing.T) {
		ps, _, _, _ := newPlayService(t)
		_, _, err := ps.Start(ctx, level.Easy, 50)
		assert.ErrorIs(t, err, level.ErrInvalidLevel)
		_, _, err = ps.Start(ctx, level.Difficulty(8), 0)
		assert.ErrorIs(t, err, level.ErrUnknownDifficulty)
	})

	t.Run("Start fails when the token cannot be signed", func(t *testing.T) {
		ps, _, tokenizer, _ := newPlayService(t)
		tokenizer.err = errors.New("no key")
		_, _, err := ps.Start(ctx, level.Easy, 0)
		assert.Error(t, err)
	})

	t.Run("Unknown session", func(t *testing.T) {
		ps, _, _, _ := newPlayService(t)
		_, err := ps.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, game.ErrSessionNotFound)
		_, _, err = ps.Move(ctx, uuid.New(), maze.East)
		assert.ErrorIs(t, err, game.ErrSessionNotFound)
	})

	t.Run("Hints guide the player to the goal", func(t *testing.T) {
		ps, clock, _, logger := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Easy, 4)
		require.NoError(t, err)

		s, path, err := ps.Hint(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, s.HintsLeft)
		assert.Equal(t, path, s.Level.Hint)

		var res maze.MoveResult
		for i := 1; i < len(path); i++ {
			clock.Advance(50 * time.Millisecond)
			s, res, err = ps.Move(ctx, s.ID, directionBetween(path[i-1], path[i]))
			require.NoError(t, err)
		}
		assert.Equal(t, maze.GoalReached, res.Outcome)
		assert.Equal(t, game.StatusCompleted, s.Status)
		assert.True(t, logger.contains("completed level 4"))

		s, err = ps.Next(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, s.Level.Index)
		assert.Equal(t, 3, s.HintsLeft)
		assert.Equal(t, game.StatusPlaying, s.Status)
	})

	t.Run("Hint allowance is enforced", func(t *testing.T) {
		ps, _, _, _ := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Hard, 10)
		require.NoError(t, err)

		_, _, err = ps.Hint(ctx, s.ID)
		require.NoError(t, err)
		_, _, err = ps.Hint(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrNoHintsLeft)

		got, err := ps.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Zero(t, got.HintsLeft)
		assert.Equal(t, 1, got.Level.HintsUsed)
	})

	t.Run("Running out of time is stored", func(t *testing.T) {
		ps, clock, _, logger := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Easy, 0)
		require.NoError(t, err)

		clock.Advance(37 * time.Second)
		got, _, err := ps.Move(ctx, s.ID, maze.East)
		assert.ErrorIs(t, err, game.ErrTimeUp)
		require.NotNil(t, got)
		assert.Equal(t, game.StatusTimeUp, got.Status)
		assert.True(t, logger.contains("ran out of time"))

		got, err = ps.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatusTimeUp, got.Status)

		got, err = ps.Restart(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatusPlaying, got.Status)
		assert.Equal(t, clock.now.Add(36*time.Second), got.Deadline)
	})

	t.Run("Get expires an idle session", func(t *testing.T) {
		ps, clock, _, _ := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Easy, 0)
		require.NoError(t, err)

		clock.Advance(time.Minute)
		got, err := ps.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatusTimeUp, got.Status)
	})

	t.Run("Pause and resume", func(t *testing.T) {
		ps, clock, _, _ := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Easy, 0)
		require.NoError(t, err)

		clock.Advance(10 * time.Second)
		paused, err := ps.Pause(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatusPaused, paused.Status)

		clock.Advance(5 * time.Minute)
		_, _, err = ps.Move(ctx, s.ID, maze.East)
		assert.ErrorIs(t, err, game.ErrNotPlaying)

		resumed, err := ps.Resume(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, game.StatusPlaying, resumed.Status)
		assert.Equal(t, 26*time.Second, resumed.Remaining(clock.now))

		_, err = ps.Resume(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrNotPaused)
	})

	t.Run("Failed operations leave the session untouched", func(t *testing.T) {
		ps, _, _, _ := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Normal, 0)
		require.NoError(t, err)

		_, err = ps.Next(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrLevelNotCompleted)
		_, err = ps.SetDifficulty(ctx, s.ID, level.Difficulty(9))
		assert.ErrorIs(t, err, level.ErrUnknownDifficulty)

		got, err := ps.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("Set difficulty", func(t *testing.T) {
		ps, _, _, _ := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Normal, 9)
		require.NoError(t, err)

		got, err := ps.SetDifficulty(ctx, s.ID, level.Easy)
		require.NoError(t, err)
		assert.Equal(t, level.Easy, got.Level.Difficulty)
		assert.Equal(t, 9, got.Level.Index)
		assert.Equal(t, 3, got.HintsLeft)
	})

	t.Run("End discards the session", func(t *testing.T) {
		ps, _, _, logger := newPlayService(t)
		s, _, err := ps.Start(ctx, level.Easy, 0)
		require.NoError(t, err)

		require.NoError(t, ps.End(ctx, s.ID))
		assert.True(t, logger.contains("ended session "+s.ID.String()))

		_, err = ps.Get(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrSessionNotFound)

		assert.NoError(t, ps.End(ctx, s.ID))
	})
}

func TestLevelService(t *testing.T) {
	logger := &recordingLogger{}
	ls, err := NewLevelService(logger, level.Normal)
	require.NoError(t, err)
	assert.True(t, logger.contains("difficulty normal"))

	t.Run("Serves catalog levels", func(t *testing.T) {
		lvl, err := ls.Level(level.Normal, 0)
		require.NoError(t, err)
		assert.Equal(t, 18, lvl.Dimensions().Cols)

		again, err := ls.Level(level.Normal, 0)
		require.NoError(t, err)
		assert.Same(t, lvl, again)
	})

	t.Run("Builds other difficulties lazily", func(t *testing.T) {
		levels, err := ls.Levels(level.Hard)
		require.NoError(t, err)
		assert.Len(t, levels, level.NumLevels)
		assert.True(t, logger.contains("difficulty hard"))
	})

	t.Run("Path does not touch hint state", func(t *testing.T) {
		lvl, err := ls.Level(level.Easy, 2)
		require.NoError(t, err)
		path, err := ls.Path(level.Easy, 2, lvl.Start())
		require.NoError(t, err)
		assert.Equal(t, lvl.Goal(), path[len(path)-1])
		assert.Zero(t, lvl.HintsUsed())
		assert.Nil(t, lvl.Hint())
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := ls.Level(level.Easy, -1)
		assert.ErrorIs(t, err, level.ErrInvalidLevel)
		_, err = ls.Levels(level.Difficulty(5))
		assert.ErrorIs(t, err, level.ErrUnknownDifficulty)
		_, err = ls.Path(level.Easy, 0, maze.CellPosition{Row: 100, Col: 0})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	_, err = NewLevelService(nil)
	assert.Error(t, err)
}
