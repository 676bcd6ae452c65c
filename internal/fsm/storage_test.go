package fsm

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if val, ok := f.data[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestStorageRoundTrip(t *testing.T) {
	client := newFakeRedis()
	storage := NewStorage(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, 42, State("awaiting_name")))

	state, err := storage.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, State("awaiting_name"), state)
	assert.Equal(t, time.Hour, client.ttls["fsm:42"])

	require.NoError(t, storage.Clear(ctx, 42))

	state, err = storage.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}

func TestStorageMissingStateIsNone(t *testing.T) {
	storage := NewStorage(newFakeRedis(), time.Hour)

	state, err := storage.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}

func TestStorageClearAbsentIsNoOp(t *testing.T) {
	storage := NewStorage(newFakeRedis(), time.Hour)
	require.NoError(t, storage.Clear(context.Background(), 7))
}

func TestStorageKeysAreScopedPerChat(t *testing.T) {
	client := newFakeRedis()
	storage := NewStorage(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, 1, State("a")))
	require.NoError(t, storage.Set(ctx, 2, State("b")))

	state, err := storage.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, State("a"), state)

	state, err = storage.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, State("b"), state)
}
