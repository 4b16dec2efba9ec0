package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/paranoid/core/session"
)

// DefaultPrefix is prepended to session IDs to build Redis keys.
const DefaultPrefix = "paranoid:session:"

// Store keeps encoded sessions in Redis.
// Each key expires together with its session, so no cleanup job is needed.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix. An empty prefix is ignored.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a Store on an existing client. The caller owns the client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get loads the session with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return session.Unmarshal(data)
}

// Save writes the session with a TTL matching its expiry.
// An already expired session is removed instead.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.Join(session.ErrSaveSession, session.ErrNilSession)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	data, err := session.Marshal(sess)
	if err != nil {
		return errors.Join(session.ErrSaveSession, err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return errors.Join(session.ErrSaveSession, err)
	}
	return nil
}

// Delete removes the session. Unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(session.ErrDeleteSession, err)
	}
	return nil
}

func (s *Store) key(id uuid.UUID) string {
	return s.prefix + id.String()
}
