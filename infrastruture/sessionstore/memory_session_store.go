package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

type memoryEntry struct {
	session   *game.Session
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Entries expire after the TTL
// since their last write and are purged lazily.
type MemorySessionStore struct {
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	now      func() time.Time
	sync.Mutex
}

// NewMemorySessionStore creates an in-memory store whose entries live for ttlSeconds after each write.
func NewMemorySessionStore(ttlSeconds int) i.SessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		ttl:      time.Duration(ttlSeconds) * time.Second,
		now:      time.Now,
	}
}

// Save implements i.SessionStore.
func (m *MemorySessionStore) Save(_ context.Context, s *game.Session) error {
	m.Lock()
	defer m.Unlock()

	m.put(s)
	return nil
}

// Get implements i.SessionStore.
func (m *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*game.Session, error) {
	m.Lock()
	defer m.Unlock()

	s, ok := m.lookup(id)
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Update implements i.SessionStore.
func (m *MemorySessionStore) Update(_ context.Context, id uuid.UUID, fn func(*game.Session) error) error {
	m.Lock()
	defer m.Unlock()

	s, ok := m.lookup(id)
	if !ok {
		return game.ErrSessionNotFound
	}

	working := s.Clone()
	if err := fn(working); err != nil {
		return err
	}
	m.put(working)
	return nil
}

// Delete implements i.SessionStore.
func (m *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) put(s *game.Session) {
	m.sessions[s.ID] = memoryEntry{
		session:   s.Clone(),
		expiresAt: m.now().Add(m.ttl),
	}
}

func (m *MemorySessionStore) lookup(id uuid.UUID) (*game.Session, bool) {
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	return entry.session, true
}
