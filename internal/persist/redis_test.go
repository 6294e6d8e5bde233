package persist

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(newTestRedis(t))

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, store.Save(ctx, 1, []byte(`{"version":1}`)))
	blob, err := store.Load(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":1}`, string(blob))
}

func TestRedisStoreIgnoresStaleVersions(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(newTestRedis(t))

	require.NoError(t, store.Save(ctx, 5, []byte(`{"version":5}`)))
	require.NoError(t, store.Save(ctx, 3, []byte(`{"version":3}`)))

	blob, err := store.Load(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":5}`, string(blob))

	require.NoError(t, store.Save(ctx, 6, []byte(`{"version":6}`)))
	blob, err = store.Load(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":6}`, string(blob))
}
