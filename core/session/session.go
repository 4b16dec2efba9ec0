package session

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session is a per-client key-value store.
// A Session belongs to a single request and is not safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time

	values    map[string]any
	isNew     bool
	modified  bool
	destroyed bool
	// staleID is a destroyed identity that still has to be removed from the store.
	staleID uuid.UUID
}

// New creates an empty session that expires after ttl.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		values:    make(map[string]any),
		isNew:     true,
	}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
// Setting a value on a cleared session starts a new session with a fresh ID.
func (s *Session) Set(key string, value any) {
	if s.destroyed {
		s.revive()
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
	s.touchModified()
}

// Delete removes key from the session.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.touchModified()
}

// Clear removes every value and marks the session for destruction.
// The transport deletes it from the store and expires the client cookie.
func (s *Session) Clear() {
	clear(s.values)
	s.destroyed = true
	s.modified = true
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	return len(s.values)
}

// IsNew reports whether the session has never been persisted.
func (s *Session) IsNew() bool {
	return s.isNew
}

// IsModified reports whether the session needs saving.
func (s *Session) IsModified() bool {
	return s.modified
}

// IsDestroyed reports whether Clear was called and no value was set afterwards.
func (s *Session) IsDestroyed() bool {
	return s.destroyed
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// StaleID returns an identity replaced during this request, or uuid.Nil.
func (s *Session) StaleID() uuid.UUID {
	return s.staleID
}

// Touch extends the expiration if touchInterval has elapsed since the last update.
func (s *Session) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.modified = true
	}
}

func (s *Session) touchModified() {
	s.UpdatedAt = time.Now()
	s.modified = true
}

func (s *Session) revive() {
	if !s.isNew {
		s.staleID = s.ID
	}
	ttl := time.Until(s.ExpiresAt)
	fresh := New(ttl)
	s.ID = fresh.ID
	s.CreatedAt = fresh.CreatedAt
	s.ExpiresAt = fresh.ExpiresAt
	s.isNew = true
	s.destroyed = false
}

// record is the persisted form of a session.
type record struct {
	ID        uuid.UUID      `json:"id"`
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Marshal encodes a session for storage.
// Values go through encoding/json, so they come back as JSON-native types:
// a []string is restored as []any.
func Marshal(s *Session) ([]byte, error) {
	return json.Marshal(record{
		ID:        s.ID,
		Values:    s.values,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

// Unmarshal decodes a session produced by Marshal.
func Unmarshal(data []byte) (*Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Values == nil {
		rec.Values = make(map[string]any)
	}
	return &Session{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		ExpiresAt: rec.ExpiresAt,
		values:    rec.Values,
	}, nil
}
