package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "maze-runner"
	sessionKeyFmt  = "%s:session:%s"
	lockSuffix     = ":lock"
	lockExpiration = 5 * time.Second
)

// RedisSessionStore keeps sessions as JSON values in Redis with a TTL,
// serialising updates of the same session with a redsync mutex.
type RedisSessionStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisSessionStore initializes a RedisSessionStore with the provided Redis client and TTL.
func NewRedisSessionStore(client *redis.Client, ttlSeconds int) (i.SessionStore, error) {
	if client == nil {
		return nil, errors.New("redis session store requires a client")
	}

	store := &RedisSessionStore{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save implements i.SessionStore.
func (r *RedisSessionStore) Save(ctx context.Context, s *game.Session) error {
	payload, err := encodeSession(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(s.ID), payload, r.ttl).Err()
}

// Get implements i.SessionStore.
func (r *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	payload, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, game.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSession(payload)
}

// Update implements i.SessionStore.
func (r *RedisSessionStore) Update(ctx context.Context, id uuid.UUID, fn func(*game.Session) error) error {
	mutex := r.locker.NewMutex(r.key(id)+lockSuffix, redsync.WithExpiry(lockExpiration))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking session %s: %w", id, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return r.Save(ctx, s)
}

// Delete implements i.SessionStore.
func (r *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *RedisSessionStore) key(id uuid.UUID) string {
	return fmt.Sprintf(sessionKeyFmt, r.prefix, id)
}

func encodeSession(s *game.Session) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	return payload, nil
}

func decodeSession(payload []byte) (*game.Session, error) {
	var s game.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}
