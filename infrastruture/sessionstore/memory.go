package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/google/uuid"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is a single-process SessionStore. Sessions are kept encoded so
// callers never share state with the store.
type MemoryStore struct {
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]entry
	locks    map[uuid.UUID]chan struct{}
	mu       sync.Mutex
}

// NewMemoryStore creates an empty store whose sessions expire after ttl of
// inactivity. A zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]entry),
		locks:    make(map[uuid.UUID]chan struct{}),
	}
}

func (m *MemoryStore) Save(_ context.Context, s *dmn.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{payload: payload}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.sessions[s.ID] = e
	return nil
}

func (m *MemoryStore) ByID(_ context.Context, id uuid.UUID) (*dmn.Session, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok && !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, dmn.ErrSessionNotFound
	}

	var s dmn.Session
	if err := json.Unmarshal(e.payload, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.locks, id)
	return nil
}

// Lock blocks until the session mutex is free or ctx is done.
func (m *MemoryStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = make(chan struct{}, 1)
		m.locks[id] = l
	}
	m.mu.Unlock()

	select {
	case l <- struct{}{}:
		return func() { <-l }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", dmn.ErrSessionBusy, ctx.Err())
	}
}
