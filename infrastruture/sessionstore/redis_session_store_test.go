package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttlSeconds int) (*miniredis.Miniredis, *RedisSessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisSessionStore(client, ttlSeconds)
	require.NoError(t, err)
	return mr, store.(*RedisSessionStore)
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf(sessionKeyFmt, defaultPrefix, id)
}

func TestNewRedisSessionStore(t *testing.T) {
	_, err := NewRedisSessionStore(nil, 60)
	assert.Error(t, err)
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and get round trip", func(t *testing.T) {
		_, store := newRedisStore(t, 60)
		s := newSession(t)
		lvl, err := s.LoadLevel()
		require.NoError(t, err)
		_, err = s.Hint(lvl, t0)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, s.Level, got.Level)
		assert.Equal(t, s.HintsLeft, got.HintsLeft)
		assert.True(t, s.Deadline.Equal(got.Deadline))
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, store := newRedisStore(t, 60)
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, game.ErrSessionNotFound)

		err = store.Update(ctx, uuid.New(), func(*game.Session) error { return nil })
		assert.ErrorIs(t, err, game.ErrSessionNotFound)
	})

	t.Run("Update stores on success only", func(t *testing.T) {
		mr, store := newRedisStore(t, 60)
		s := newSession(t)
		require.NoError(t, store.Save(ctx, s))

		failure := errors.New("rejected")
		err := store.Update(ctx, s.ID, func(s *game.Session) error {
			s.Moves = 7
			s.Position = maze.CellPosition{Row: 1, Col: 1}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Moves)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, got.Position)

		require.NoError(t, store.Update(ctx, s.ID, func(s *game.Session) error {
			s.Moves = 3
			return nil
		}))
		got, err = store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Moves)

		// the lock is released once the update finishes
		assert.False(t, mr.Exists(sessionKey(s.ID)+lockSuffix))
	})

	t.Run("Sessions expire after the TTL", func(t *testing.T) {
		mr, store := newRedisStore(t, 60)
		s := newSession(t)
		require.NoError(t, store.Save(ctx, s))

		ttl := mr.TTL(sessionKey(s.ID))
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 60*time.Second)

		require.NoError(t, store.Update(ctx, s.ID, func(s *game.Session) error {
			s.Moves = 1
			return nil
		}))
		assert.Greater(t, mr.TTL(sessionKey(s.ID)), time.Duration(0))

		mr.FastForward(61 * time.Second)
		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mr, store := newRedisStore(t, 60)
		s := newSession(t)
		require.NoError(t, store.Save(ctx, s))

		require.NoError(t, store.Delete(ctx, s.ID))
		assert.False(t, mr.Exists(sessionKey(s.ID)))
		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, game.ErrSessionNotFound)
		assert.NoError(t, store.Delete(ctx, s.ID))
	})
}
