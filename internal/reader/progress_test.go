package reader

import (
	"context"
	"testing"
	"time"

	"namavruksha/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProgressStore(t *testing.T) (*miniredis.Miniredis, *RedisProgressStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisProgressStore(client)
}

func TestRedisProgressStore_RoundTrip(t *testing.T) {
	_, store := setupProgressStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dev-1", "book-1", &Progress{
		LastPage:  17,
		Bookmarks: []int{2, 9, 30},
	}))

	loaded, err := store.Load(ctx, "dev-1", "book-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 17, loaded.LastPage)
	assert.Equal(t, []int{2, 9, 30}, loaded.Bookmarks)
}

func TestRedisProgressStore_MissingReturnsNil(t *testing.T) {
	_, store := setupProgressStore(t)

	loaded, err := store.Load(context.Background(), "dev-1", "never-opened")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisProgressStore_ScopedPerDevoteeAndDocument(t *testing.T) {
	_, store := setupProgressStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dev-1", "book-1", &Progress{LastPage: 3}))
	require.NoError(t, store.Save(ctx, "dev-2", "book-1", &Progress{LastPage: 8}))

	first, err := store.Load(ctx, "dev-1", "book-1")
	require.NoError(t, err)
	second, err := store.Load(ctx, "dev-2", "book-1")
	require.NoError(t, err)
	assert.Equal(t, 3, first.LastPage)
	assert.Equal(t, 8, second.LastPage)
}

func TestRedisProgressStore_SurvivesTimePassing(t *testing.T) {
	mr, store := setupProgressStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dev-1", "book-1", &Progress{LastPage: 5}))
	mr.FastForward(90 * 24 * time.Hour)

	loaded, err := store.Load(ctx, "dev-1", "book-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 5, loaded.LastPage, "reading progress has no expiry")
}
