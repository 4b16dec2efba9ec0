package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory.
// Sessions are stored in encoded form so reads return independent copies,
// matching the behavior of networked stores.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]byte
	expires  map[uuid.UUID]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID][]byte),
		expires:  make(map[uuid.UUID]time.Time),
	}
}

// Get returns the session with the given ID.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Unmarshal(data)
}

// Save stores the session, replacing any previous version.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	if sess == nil {
		return errors.Join(ErrSaveSession, ErrNilSession)
	}
	data, err := Marshal(sess)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = data
	s.expires[sess.ID] = sess.ExpiresAt
	s.mu.Unlock()
	return nil
}

// Delete removes the session. Unknown IDs are ignored.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.sessions, id)
	delete(s.expires, id)
	s.mu.Unlock()
	return nil
}

// DeleteExpired removes all expired sessions.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, exp := range s.expires {
		if now.After(exp) {
			delete(s.sessions, id)
			delete(s.expires, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
