package infrastructure

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dahcoins/domain/entities"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
			Labels: map[string]string{
				"test":      "dahcoins-infrastructure",
				"test-name": t.Name(),
				"cleanup":   "auto",
			},
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, fmt.Sprintf("%s:%s", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisCooldownStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := setupRedis(t)
	store := NewRedisCooldownStore(client)
	ctx := context.Background()

	t.Run("no cooldown", func(t *testing.T) {
		expiry, err := store.GetExpiry(ctx, "alice", entities.ActionLikeGiven)
		require.NoError(t, err)
		assert.Nil(t, expiry)
	})

	t.Run("set then get", func(t *testing.T) {
		expiresAt := time.Now().Add(2 * time.Second).UTC().Truncate(time.Millisecond)
		require.NoError(t, store.SetExpiry(ctx, "alice", entities.ActionLikeGiven, expiresAt))

		expiry, err := store.GetExpiry(ctx, "alice", entities.ActionLikeGiven)
		require.NoError(t, err)
		require.NotNil(t, expiry)
		assert.True(t, expiresAt.Equal(*expiry))

		ttl, err := client.TTL(ctx, cooldownKey("alice", entities.ActionLikeGiven)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 3*time.Second)
	})

	t.Run("keys are per user and action", func(t *testing.T) {
		expiry, err := store.GetExpiry(ctx, "bob", entities.ActionLikeGiven)
		require.NoError(t, err)
		assert.Nil(t, expiry)

		expiry, err = store.GetExpiry(ctx, "alice", entities.ActionPostCreated)
		require.NoError(t, err)
		assert.Nil(t, expiry)
	})

	t.Run("past expiry clears the key", func(t *testing.T) {
		require.NoError(t, store.SetExpiry(ctx, "carol", entities.ActionLikeGiven, time.Now().Add(time.Minute)))
		require.NoError(t, store.SetExpiry(ctx, "carol", entities.ActionLikeGiven, time.Now().Add(-time.Second)))

		expiry, err := store.GetExpiry(ctx, "carol", entities.ActionLikeGiven)
		require.NoError(t, err)
		assert.Nil(t, expiry)
	})
}
