package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/session"
)

func TestManager(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty new session is not persisted", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		require.NoError(t, mgr.Store(ctx, mgr.New()))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("store and load", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store, session.WithTTL(time.Hour))

		sess := mgr.New()
		sess.Set("user", "alice")
		require.NoError(t, mgr.Store(ctx, sess))
		assert.False(t, sess.IsNew())
		assert.False(t, sess.IsModified())

		loaded, err := mgr.Load(ctx, sess.ID)
		require.NoError(t, err)
		v, _ := loaded.Get("user")
		assert.Equal(t, "alice", v)
	})

	t.Run("load missing", func(t *testing.T) {
		t.Parallel()

		mgr := session.NewManager(session.NewMemoryStore())
		_, err := mgr.Load(ctx, uuid.New())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("load or new falls back on missing and nil id", func(t *testing.T) {
		t.Parallel()

		mgr := session.NewManager(session.NewMemoryStore())

		sess, err := mgr.LoadOrNew(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, sess.IsNew())

		sess, err = mgr.LoadOrNew(ctx, uuid.Nil)
		require.NoError(t, err)
		assert.True(t, sess.IsNew())
	})

	t.Run("expired session is removed", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		sess := session.New(time.Hour)
		sess.Set("k", "v")
		sess.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, sess))

		_, err := mgr.Load(ctx, sess.ID)
		assert.ErrorIs(t, err, session.ErrExpired)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("cleared session is deleted", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		sess := mgr.New()
		sess.Set("k", "v")
		require.NoError(t, mgr.Store(ctx, sess))
		require.Equal(t, 1, store.Len())

		loaded, err := mgr.Load(ctx, sess.ID)
		require.NoError(t, err)
		loaded.Clear()

		err = mgr.Store(ctx, loaded)
		assert.ErrorIs(t, err, session.ErrDestroyed)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("set after clear replaces stored session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		sess := mgr.New()
		sess.Set("k", "v")
		require.NoError(t, mgr.Store(ctx, sess))

		loaded, err := mgr.Load(ctx, sess.ID)
		require.NoError(t, err)
		loaded.Clear()
		loaded.Set("flash", "signed out")
		require.NoError(t, mgr.Store(ctx, loaded))

		assert.Equal(t, 1, store.Len())
		_, err = mgr.Load(ctx, sess.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
		_, err = mgr.Load(ctx, loaded.ID)
		assert.NoError(t, err)
	})

	t.Run("cleanup deletes expired", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		stale := session.New(time.Hour)
		stale.ExpiresAt = time.Now().Add(-time.Second)
		require.NoError(t, store.Save(ctx, stale))
		require.NoError(t, store.Save(ctx, session.New(time.Hour)))

		n, err := mgr.Cleanup(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("config", func(t *testing.T) {
		t.Parallel()

		mgr := session.NewFromConfig(session.NewMemoryStore(), session.Config{TTL: time.Minute})
		assert.Equal(t, time.Minute, mgr.TTL())

		mgr = session.NewFromConfig(session.NewMemoryStore(), session.DefaultConfig())
		assert.Equal(t, session.DefaultTTL, mgr.TTL())
	})
}
