package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdempotencyCheckAndSetNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, existing, err := store.CheckAndSet(ctx, "post:inv-1", []byte(`{"created":true}`), time.Minute)
	require.NoError(t, err)
	require.False(t, exists)
	require.Nil(t, existing)
}

func TestIdempotencyCheckAndSetExistingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	_, _, err := store.CheckAndSet(ctx, "post:inv-1", []byte(`{"created":true}`), time.Minute)
	require.NoError(t, err)

	exists, existing, err := store.CheckAndSet(ctx, "post:inv-1", []byte(`{"created":false}`), time.Minute)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []byte(`{"created":true}`), existing)
}

func TestIdempotencyPlaceholderLock(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	// First caller locks the key without a response yet.
	exists, _, err := store.CheckAndSet(ctx, "post:inv-1", nil, time.Minute)
	require.NoError(t, err)
	require.False(t, exists)

	// Second caller sees the in-flight placeholder.
	exists, existing, err := store.CheckAndSet(ctx, "post:inv-1", nil, time.Minute)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []byte("processing"), existing)
}

func TestIdempotencyUpdate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	_, _, err := store.CheckAndSet(ctx, "post:inv-1", nil, time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, "post:inv-1", []byte(`{"entry_id":"e1"}`), time.Minute))

	exists, existing, err := store.CheckAndSet(ctx, "post:inv-1", nil, time.Minute)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, []byte(`{"entry_id":"e1"}`), existing)
}
