package pgstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/integration/database/pg"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "sessions"

// Schema creates the default sessions table.
const Schema = `CREATE TABLE IF NOT EXISTS sessions (
	id         UUID PRIMARY KEY,
	data       JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);`

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid session table name")

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// Store keeps sessions in a PostgreSQL table.
// The pool is owned by the caller. Queries join a transaction carried by the
// context through pg.WithTx.
type Store struct {
	pool  *pgxpool.Pool
	table string

	getSQL    string
	saveSQL   string
	deleteSQL string
	expireSQL string
}

// Option configures a Store.
type Option func(*Store) error

// WithTable sets the table name, optionally schema-qualified.
func WithTable(table string) Option {
	return func(s *Store) error {
		if !identRe.MatchString(table) {
			return fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
		s.table = table
		return nil
	}
}

// New creates a Store on pool.
func New(pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	s := &Store{pool: pool, table: DefaultTable}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.getSQL = `SELECT data FROM ` + s.table + ` WHERE id = $1`
	s.saveSQL = `INSERT INTO ` + s.table + ` (id, data, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`
	s.deleteSQL = `DELETE FROM ` + s.table + ` WHERE id = $1`
	s.expireSQL = `DELETE FROM ` + s.table + ` WHERE expires_at <= $1`
	return s, nil
}

// Get loads the session with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var data []byte
	err := pg.Executor(ctx, s.pool).QueryRow(ctx, s.getSQL, id).Scan(&data)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return session.Unmarshal(data)
}

// Save inserts or replaces the session.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.Join(session.ErrSaveSession, session.ErrNilSession)
	}

	data, err := session.Marshal(sess)
	if err != nil {
		return errors.Join(session.ErrSaveSession, err)
	}

	if _, err := pg.Executor(ctx, s.pool).Exec(ctx, s.saveSQL, sess.ID, data, sess.ExpiresAt); err != nil {
		return errors.Join(session.ErrSaveSession, err)
	}
	return nil
}

// Delete removes the session. Unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := pg.Executor(ctx, s.pool).Exec(ctx, s.deleteSQL, id); err != nil {
		return errors.Join(session.ErrDeleteSession, err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry has passed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := pg.Executor(ctx, s.pool).Exec(ctx, s.expireSQL, time.Now())
	if err != nil {
		return 0, errors.Join(session.ErrDeleteSession, err)
	}
	return tag.RowsAffected(), nil
}
