package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/pkg/ratelimiter"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	store := ratelimiter.NewRedisStore(client, "test:"+uuid.NewString()+":")
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	for i := range 2 {
		res, err := b.Allow(ctx, "198.51.100.1")
		require.NoError(t, err)
		assert.Equal(t, 1-i, res.Remaining)
	}

	res, err := b.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ResetAt, time.Minute)

	res, err = b.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.Equal(t, -1, res.Remaining, "denials do not drain the bucket")
	res, err = b.Status(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	require.NoError(t, b.Reset(ctx, "198.51.100.1"))
	res, err = b.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	store := ratelimiter.NewRedisStore(client, "test:")
	_, _, err := store.ConsumeTokens(context.Background(), "k", 1, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}
