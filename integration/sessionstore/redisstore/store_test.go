package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/integration/sessionstore/redisstore"
)

func setup(t *testing.T, opts ...redisstore.Option) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client, opts...), mr
}

func TestStore_SaveAndGet(t *testing.T) {
	t.Parallel()

	store, mr := setup(t)
	ctx := context.Background()

	sess := session.New(time.Hour)
	sess.Set("user_id", "42")
	require.NoError(t, store.Save(ctx, sess))

	key := redisstore.DefaultPrefix + sess.ID.String()
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.False(t, got.IsNew())
	v, ok := got.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "42", v)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	store, _ := setup(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_KeyExpires(t *testing.T) {
	t.Parallel()

	store, mr := setup(t)
	ctx := context.Background()

	sess := session.New(time.Minute)
	sess.Set("k", "v")
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_SaveExpiredDeletes(t *testing.T) {
	t.Parallel()

	store, mr := setup(t)
	ctx := context.Background()

	sess := session.New(time.Hour)
	sess.Set("k", "v")
	require.NoError(t, store.Save(ctx, sess))

	sess.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Save(ctx, sess))

	assert.False(t, mr.Exists(redisstore.DefaultPrefix+sess.ID.String()))
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store, _ := setup(t)
	ctx := context.Background()

	sess := session.New(time.Hour)
	sess.Set("k", "v")
	require.NoError(t, store.Save(ctx, sess))

	require.NoError(t, store.Delete(ctx, sess.ID))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_NilSession(t *testing.T) {
	t.Parallel()

	store, _ := setup(t)

	err := store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, session.ErrNilSession)
	assert.ErrorIs(t, err, session.ErrSaveSession)
}

func TestStore_Prefix(t *testing.T) {
	t.Parallel()

	store, mr := setup(t, redisstore.WithPrefix("app:sess:"))
	ctx := context.Background()

	sess := session.New(time.Hour)
	sess.Set("k", "v")
	require.NoError(t, store.Save(ctx, sess))

	assert.True(t, mr.Exists("app:sess:"+sess.ID.String()))
	assert.False(t, mr.Exists(redisstore.DefaultPrefix+sess.ID.String()))
}

func TestStore_ServerDown(t *testing.T) {
	t.Parallel()

	store, mr := setup(t)
	mr.Close()

	sess := session.New(time.Hour)
	sess.Set("k", "v")

	assert.ErrorIs(t, store.Save(context.Background(), sess), session.ErrSaveSession)
	assert.ErrorIs(t, store.Delete(context.Background(), sess.ID), session.ErrDeleteSession)

	_, err := store.Get(context.Background(), sess.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestStore_TrustedTokensSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := setup(t)
	mgr := session.NewManager(store, session.WithTTL(time.Hour))
	ctx := context.Background()

	tokens := paranoid.NewTokenStore("")

	sess := mgr.New()
	tokens.WriteToken(sess, "a1", paranoid.RetentionMultiple)
	tokens.WriteToken(sess, "b2", paranoid.RetentionMultiple)
	require.NoError(t, mgr.Store(ctx, sess))

	loaded, err := mgr.Load(ctx, sess.ID)
	require.NoError(t, err)

	got, present := tokens.ReadTokens(loaded)
	require.True(t, present)
	assert.Equal(t, []string{"a1", "b2"}, got)
}
