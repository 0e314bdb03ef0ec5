package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "resolve:co1:sales:0.00", []byte(`{"id":"acc-1"}`), time.Minute))

	val, err := cache.Get(ctx, "resolve:co1:sales:0.00")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":"acc-1"}`), val)
}

func TestCacheMissReturnsNil(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	val, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "key"))

	val, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestCacheEntriesExpire(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("value"), time.Second))
	mr.FastForward(2 * time.Second)

	val, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.Nil(t, val)
}
