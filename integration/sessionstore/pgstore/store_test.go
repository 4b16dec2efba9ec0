package pgstore_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/integration/database/pg"
	"github.com/dmitrymomot/paranoid/integration/sessionstore/pgstore"
)

func TestNew_TableValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "plain", table: "web_sessions"},
		{name: "schema_qualified", table: "auth.sessions"},
		{name: "injection", table: "sessions; DROP TABLE users", wantErr: true},
		{name: "empty", table: "", wantErr: true},
		{name: "leading_digit", table: "1sessions", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pgstore.New(nil, pgstore.WithTable(tt.table))
			if tt.wantErr {
				assert.ErrorIs(t, err, pgstore.ErrInvalidTable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func openTestStore(t *testing.T) *pgstore.Store {
	t.Helper()

	url := strings.TrimSpace(os.Getenv("PG_TEST_URL"))
	if url == "" {
		t.Skip("integration test skipped: PG_TEST_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, pg.Config{ConnectionString: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	table := "paranoid_it_" + uuid.NewString()[:8]
	_, err = pool.Exec(ctx, `CREATE TABLE `+table+` (
		id UUID PRIMARY KEY,
		data JSONB NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS `+table)
	})

	store, err := pgstore.New(pool, pgstore.WithTable(table))
	require.NoError(t, err)
	return store
}

func TestStore_Integration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("save_get_delete", func(t *testing.T) {
		sess := session.New(time.Hour)
		sess.Set("user_id", "42")
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		v, ok := got.Get("user_id")
		require.True(t, ok)
		assert.Equal(t, "42", v)

		sess.Set("user_id", "43")
		require.NoError(t, store.Save(ctx, sess))
		got, err = store.Get(ctx, sess.ID)
		require.NoError(t, err)
		v, _ = got.Get("user_id")
		assert.Equal(t, "43", v)

		require.NoError(t, store.Delete(ctx, sess.ID))
		_, err = store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete_expired", func(t *testing.T) {
		live := session.New(time.Hour)
		live.Set("k", "v")
		require.NoError(t, store.Save(ctx, live))

		dead := session.New(time.Hour)
		dead.Set("k", "v")
		dead.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, dead))

		n, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = store.Get(ctx, live.ID)
		assert.NoError(t, err)
		_, err = store.Get(ctx, dead.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("trusted_tokens_round_trip", func(t *testing.T) {
		mgr := session.NewManager(store)
		tokens := paranoid.NewTokenStore("")

		sess := mgr.New()
		tokens.WriteToken(sess, "a1", paranoid.RetentionSingle)
		require.NoError(t, mgr.Store(ctx, sess))

		loaded, err := mgr.Load(ctx, sess.ID)
		require.NoError(t, err)
		got, present := tokens.ReadTokens(loaded)
		require.True(t, present)
		assert.Equal(t, []string{"a1"}, got)
	})
}
