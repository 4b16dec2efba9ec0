package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely and return ErrNotFound
// for unknown IDs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpiredCleaner is implemented by stores that need explicit cleanup of expired sessions.
// Stores with native TTL support, such as Redis, don't implement it.
type ExpiredCleaner interface {
	// DeleteExpired removes all expired sessions and returns how many were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
