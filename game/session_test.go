package game

import (
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/level"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC)

// stepToward returns the direction leading from a to the adjacent cell b.
func stepToward(t *testing.T, a, b maze.CellPosition) maze.Direction {
	t.Helper()
	for _, d := range maze.Directions() {
		if a.Neighbor(d) == b {
			return d
		}
	}
	t.Fatalf("%s and %s are not adjacent", a, b)
	return 0
}

// blockedDirection returns a direction that is walled off from pos.
func blockedDirection(t *testing.T, lvl *level.Level, pos maze.CellPosition) maze.Direction {
	t.Helper()
	for _, d := range maze.Directions() {
		wall, err := lvl.Grid().HasWall(pos, d)
		require.NoError(t, err)
		if wall {
			return d
		}
	}
	t.Fatalf("no wall around %s", pos)
	return 0
}

func newSession(t *testing.T, index int, d level.Difficulty) (*Session, *level.Level) {
	t.Helper()
	lvl, err := level.Load(index, d)
	require.NoError(t, err)
	return New(uuid.New(), lvl, t0), lvl
}

func TestNewSession(t *testing.T) {
	s, lvl := newSession(t, 0, level.Easy)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, lvl.Start(), s.Position)
	assert.Equal(t, 3, s.HintsLeft)
	assert.Equal(t, t0.Add(36*time.Second), s.Deadline)
	assert.Equal(t, 36*time.Second, s.Remaining(t0))
	assert.Equal(t, level.Snapshot{Index: 0, Difficulty: level.Easy}, s.Level)
}

func TestSessionMove(t *testing.T) {
	t.Run("Walks the hint path to completion", func(t *testing.T) {
		s, lvl := newSession(t, 2, level.Normal)
		path, err := maze.FindPath(lvl.Grid(), lvl.Start(), lvl.Goal())
		require.NoError(t, err)

		now := t0
		for i := 1; i < len(path); i++ {
			now = now.Add(100 * time.Millisecond)
			res, err := s.Move(lvl, stepToward(t, path[i-1], path[i]), now)
			require.NoError(t, err)
			assert.Equal(t, path[i], res.To)
			if i == len(path)-1 {
				assert.Equal(t, maze.GoalReached, res.Outcome)
			} else {
				assert.Equal(t, maze.Moved, res.Outcome)
			}
		}

		assert.Equal(t, StatusCompleted, s.Status)
		assert.Equal(t, len(path)-1, s.Moves)
		assert.Equal(t, lvl.Goal(), s.Position)
		require.NotNil(t, s.FinishedAt)
		assert.Equal(t, s.Deadline.Sub(now), s.Remaining(now.Add(time.Hour)))

		_, err = s.Move(lvl, maze.North, now)
		assert.ErrorIs(t, err, ErrNotPlaying)
	})

	t.Run("Blocked move keeps position", func(t *testing.T) {
		s, lvl := newSession(t, 0, level.Easy)
		res, err := s.Move(lvl, blockedDirection(t, lvl, s.Position), t0)
		require.NoError(t, err)
		assert.Equal(t, maze.Blocked, res.Outcome)
		assert.Equal(t, lvl.Start(), s.Position)
		assert.Zero(t, s.Moves)
	})

	t.Run("Time up", func(t *testing.T) {
		s, lvl := newSession(t, 0, level.Easy)
		_, err := s.Move(lvl, maze.East, s.Deadline.Add(time.Second))
		assert.ErrorIs(t, err, ErrTimeUp)
		assert.Equal(t, StatusTimeUp, s.Status)
		assert.Zero(t, s.Remaining(s.Deadline.Add(time.Minute)))

		_, err = s.Move(lvl, maze.East, s.Deadline.Add(2*time.Second))
		assert.ErrorIs(t, err, ErrTimeUp)
	})

	t.Run("Refresh expires", func(t *testing.T) {
		s, _ := newSession(t, 0, level.Hard)
		assert.Equal(t, StatusPlaying, s.Refresh(s.Deadline))
		assert.Equal(t, StatusTimeUp, s.Refresh(s.Deadline.Add(time.Nanosecond)))
	})
}

func TestSessionHint(t *testing.T) {
	t.Run("Spends the allowance", func(t *testing.T) {
		s, lvl := newSession(t, 0, level.Normal)
		for i := 0; i < 2; i++ {
			path, err := s.Hint(lvl, t0)
			require.NoError(t, err)
			assert.Equal(t, s.Position, path[0])
			assert.Equal(t, lvl.Goal(), path[len(path)-1])
		}
		assert.Zero(t, s.HintsLeft)
		assert.Equal(t, 2, s.Level.HintsUsed)
		assert.NotEmpty(t, s.Level.Hint)

		_, err := s.Hint(lvl, t0)
		assert.ErrorIs(t, err, ErrNoHintsLeft)
		assert.Equal(t, 2, s.Level.HintsUsed)
	})

	t.Run("Hint survives reload from snapshot", func(t *testing.T) {
		s, lvl := newSession(t, 4, level.Hard)
		path, err := s.Hint(lvl, t0)
		require.NoError(t, err)

		restored, err := s.LoadLevel()
		require.NoError(t, err)
		assert.Equal(t, path, restored.Hint())
		assert.Equal(t, 1, restored.HintsUsed())
	})

	t.Run("No hint while paused", func(t *testing.T) {
		s, lvl := newSession(t, 0, level.Easy)
		require.NoError(t, s.Pause(t0))
		_, err := s.Hint(lvl, t0)
		assert.ErrorIs(t, err, ErrNotPlaying)
		assert.Equal(t, 3, s.HintsLeft)
	})
}

func TestSessionPause(t *testing.T) {
	s, lvl := newSession(t, 0, level.Easy)
	deadline := s.Deadline

	require.NoError(t, s.Pause(t0.Add(10*time.Second)))
	assert.Equal(t, StatusPaused, s.Status)
	assert.Equal(t, 26*time.Second, s.Remaining(t0.Add(time.Hour)))
	assert.ErrorIs(t, s.Pause(t0.Add(11*time.Second)), ErrNotPlaying)

	_, err := s.Move(lvl, maze.East, t0.Add(12*time.Second))
	assert.ErrorIs(t, err, ErrNotPlaying)

	require.NoError(t, s.Resume(t0.Add(70*time.Second)))
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, deadline.Add(60*time.Second), s.Deadline)
	assert.Equal(t, 26*time.Second, s.Remaining(t0.Add(70*time.Second)))
	assert.ErrorIs(t, s.Resume(t0.Add(71*time.Second)), ErrNotPaused)
}

func TestSessionProgression(t *testing.T) {
	t.Run("Restart", func(t *testing.T) {
		s, lvl := newSession(t, 1, level.Easy)
		_, err := s.Hint(lvl, t0)
		require.NoError(t, err)
		path := s.Level.Hint
		_, err = s.Move(lvl, stepToward(t, path[0], path[1]), t0)
		require.NoError(t, err)

		later := t0.Add(30 * time.Second)
		require.NoError(t, s.Restart(lvl, later))
		assert.Equal(t, lvl.Start(), s.Position)
		assert.Zero(t, s.Moves)
		assert.Equal(t, 3, s.HintsLeft)
		assert.Nil(t, s.Level.Hint)
		assert.Equal(t, later, s.StartedAt)
	})

	t.Run("Next requires completion", func(t *testing.T) {
		s, _ := newSession(t, 0, level.Easy)
		_, err := s.Next(t0)
		assert.ErrorIs(t, err, ErrLevelNotCompleted)

		s.Status = StatusCompleted
		next, err := s.Next(t0)
		require.NoError(t, err)
		assert.Equal(t, 1, next.Index())
		assert.Equal(t, 1, s.Level.Index)
		assert.Equal(t, StatusPlaying, s.Status)
	})

	t.Run("No level after the last one", func(t *testing.T) {
		s, _ := newSession(t, level.NumLevels-1, level.Hard)
		s.Status = StatusCompleted
		_, err := s.Next(t0)
		assert.ErrorIs(t, err, ErrLastLevel)
	})

	t.Run("Set difficulty", func(t *testing.T) {
		s, lvl := newSession(t, 7, level.Easy)
		require.NoError(t, s.SetDifficulty(lvl, level.Hard, t0))
		assert.Equal(t, level.Hard, s.Level.Difficulty)
		assert.Equal(t, 7, s.Level.Index)
		assert.Equal(t, 1, s.HintsLeft)
		assert.Equal(t, t0.Add(time.Duration(lvl.Dimensions().TimeBudget)*time.Second), s.Deadline)
	})
}

func TestSessionClone(t *testing.T) {
	s, lvl := newSession(t, 0, level.Easy)
	_, err := s.Hint(lvl, t0)
	require.NoError(t, err)
	require.NoError(t, s.Pause(t0))

	c := s.Clone()
	assert.Equal(t, s, c)
	c.Level.Hint[0] = maze.CellPosition{Row: 5, Col: 5}
	*c.PausedAt = t0.Add(time.Hour)
	assert.NotEqual(t, s.Level.Hint[0], c.Level.Hint[0])
	assert.Equal(t, t0, *s.PausedAt)
}
