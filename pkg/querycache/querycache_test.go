package querycache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	cache := NewWithClient(client, 30*time.Second, "test:")
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

type countingLoader struct {
	calls int
	value string
}

func (l *countingLoader) load(context.Context) (string, error) {
	l.calls++
	return l.value, nil
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)
	loader := &countingLoader{value: "Axe#10#3600#1#10##0"}

	for range 3 {
		value, err := cache.GetOrLoad(ctx, "node-types", loader.load)
		require.NoError(t, err)
		assert.Equal(t, loader.value, value)
	}
	assert.Equal(t, 1, loader.calls)

	stored, err := mr.Get("test:node-types")
	require.NoError(t, err)
	assert.Equal(t, loader.value, stored)
	assert.Equal(t, 30*time.Second, mr.TTL("test:node-types"))
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)
	loader := &countingLoader{value: "v"}

	_, err := cache.GetOrLoad(ctx, "k", loader.load)
	require.NoError(t, err)
	mr.FastForward(31 * time.Second)
	_, err = cache.GetOrLoad(ctx, "k", loader.load)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)
	loader := &countingLoader{value: "old"}

	_, err := cache.GetOrLoad(ctx, "k", loader.load)
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, "k"))
	loader.value = "new"
	value, err := cache.GetOrLoad(ctx, "k", loader.load)
	require.NoError(t, err)
	assert.Equal(t, "new", value)
	assert.Equal(t, 2, loader.calls)

	require.NoError(t, cache.Invalidate(ctx))
}

func TestInvalidateDuringLoad(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)

	value, err := cache.GetOrLoad(ctx, "k", func(ctx context.Context) (string, error) {
		require.NoError(t, cache.Invalidate(ctx, "k"))
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", value)
	assert.False(t, mr.Exists("test:k"))

	loader := &countingLoader{value: "fresh"}
	for range 2 {
		value, err = cache.GetOrLoad(ctx, "k", loader.load)
		require.NoError(t, err)
		assert.Equal(t, "fresh", value)
	}
	assert.Equal(t, 1, loader.calls)
}

func TestLoaderErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)
	failure := errors.New("boom")

	_, err := cache.GetOrLoad(ctx, "k", func(context.Context) (string, error) { return "", failure })
	require.ErrorIs(t, err, failure)
	assert.False(t, mr.Exists("test:k"))
}

func TestRedisDownServesLoader(t *testing.T) {
	ctx := context.Background()
	cache := NewWithClient(redis.NewClient(&redis.Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: -1,
	}), 0, "")
	t.Cleanup(func() { _ = cache.Close() })
	loader := &countingLoader{value: "v"}

	value, err := cache.GetOrLoad(ctx, "k", loader.load)
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
