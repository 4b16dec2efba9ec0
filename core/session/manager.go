package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager coordinates session lifecycle on top of a Store.
type Manager struct {
	store         Store
	ttl           time.Duration
	touchInterval time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithTouchInterval sets how often a read-only session has its expiration extended.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.touchInterval = interval
		}
	}
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		ttl:           DefaultTTL,
		touchInterval: DefaultTouchInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a session manager from cfg.
func NewFromConfig(store Store, cfg Config) *Manager {
	return NewManager(store, WithTTL(cfg.TTL), WithTouchInterval(cfg.TouchInterval))
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// New creates a fresh, unsaved session.
func (m *Manager) New() *Session {
	return New(m.ttl)
}

// Load retrieves the session by ID.
// Expired sessions are removed from the store and reported as ErrExpired.
func (m *Manager) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		_ = m.store.Delete(ctx, id)
		return nil, ErrExpired
	}
	return sess, nil
}

// LoadOrNew retrieves the session by ID, or returns a new one if it is missing or expired.
func (m *Manager) LoadOrNew(ctx context.Context, id uuid.UUID) (*Session, error) {
	if id == uuid.Nil {
		return m.New(), nil
	}
	sess, err := m.Load(ctx, id)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		return m.New(), nil
	default:
		return nil, err
	}
}

// Store persists the session.
// A cleared session is deleted and ErrDestroyed is returned.
// An unmodified session is only written when the touch interval has elapsed.
// New sessions without values are not persisted.
func (m *Manager) Store(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}

	if stale := sess.StaleID(); stale != uuid.Nil {
		if err := m.store.Delete(ctx, stale); err != nil {
			return errors.Join(ErrDeleteSession, err)
		}
	}

	if sess.IsDestroyed() {
		if !sess.IsNew() {
			if err := m.store.Delete(ctx, sess.ID); err != nil {
				return errors.Join(ErrDeleteSession, err)
			}
		}
		return ErrDestroyed
	}

	if sess.IsNew() && sess.Len() == 0 {
		return nil
	}

	if !sess.IsModified() {
		sess.Touch(m.ttl, m.touchInterval)
		if !sess.IsModified() {
			return nil
		}
	} else {
		sess.ExpiresAt = time.Now().Add(m.ttl)
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	sess.isNew = false
	sess.modified = false
	return nil
}

// Destroy removes the session from the store.
func (m *Manager) Destroy(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// Cleanup removes expired sessions if the store supports it.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	cleaner, ok := m.store.(ExpiredCleaner)
	if !ok {
		return 0, nil
	}
	return cleaner.DeleteExpired(ctx)
}
