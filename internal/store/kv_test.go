package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKV_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	kv := NewRedisKV(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "session:missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "session:a", `{"id":1}`, time.Minute))
	require.NoError(t, kv.Set(ctx, "session:b", `{"id":2}`, time.Minute))
	require.NoError(t, kv.Set(ctx, "other", "x", 0))

	v, err := kv.Get(ctx, "session:a")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	keys, err := kv.ScanKeys(ctx, "session:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"session:a", "session:b"}, keys)

	mr.FastForward(2 * time.Minute)
	_, err = kv.Get(ctx, "session:a")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Delete(ctx, "other"))
	_, err = kv.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV_TTLAndScan(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "session:a", "1", time.Minute))
	require.NoError(t, kv.Set(ctx, "session:b", "2", 0))

	keys, err := kv.ScanKeys(ctx, "session:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:a", "session:b"}, keys)

	now = now.Add(time.Minute)
	_, err = kv.Get(ctx, "session:a")
	assert.ErrorIs(t, err, ErrMiss)

	v, err := kv.Get(ctx, "session:b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, kv.Delete(ctx, "session:b"))
	keys, err = kv.ScanKeys(ctx, "session:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
