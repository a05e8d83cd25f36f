//go:build integration

package state_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/formdesk/console/pkg/redis"
	"github.com/formdesk/console/pkg/state"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	client := newTestRedisClient(t)

	t.Run("round trip per namespace", func(t *testing.T) {
		b := state.NewRedisBackend(client, state.WithPrefix("test-state"))

		alice, err := state.NewStore(ctx, b.Namespace("alice"))
		require.NoError(t, err)
		require.NoError(t, alice.SessionValues.Set(ctx, map[string]any{"step": float64(2)}))

		reloaded, err := state.NewStore(ctx, b.Namespace("alice"))
		require.NoError(t, err)
		require.Equal(t, map[string]any{"step": float64(2)}, reloaded.SessionValues.Get())

		bob, err := state.NewStore(ctx, b.Namespace("bob"))
		require.NoError(t, err)
		require.Equal(t, state.Empty, bob.SessionValues.Get())

		raw, err := client.Get(ctx, "test-state:alice:session_values").Result()
		require.NoError(t, err)
		require.JSONEq(t, `{"step":2}`, raw)
	})

	t.Run("missing key", func(t *testing.T) {
		b := state.NewRedisBackend(client, state.WithPrefix("test-missing"))
		_, err := b.Load(ctx, "nope")
		require.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("ttl applied", func(t *testing.T) {
		b := state.NewRedisBackend(client, state.WithPrefix("test-ttl"), state.WithTTL(time.Minute))
		require.NoError(t, b.Save(ctx, "k", []byte(`1`)))

		ttl, err := client.TTL(ctx, "test-ttl:k").Result()
		require.NoError(t, err)
		require.Greater(t, ttl, time.Duration(0))
	})
}
