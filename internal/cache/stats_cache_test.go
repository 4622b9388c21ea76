package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *RedisStatsCache {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, endpoint, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStatsCache(client, time.Second)
}

func TestRedisStatsCacheRoundTrip(t *testing.T) {
	cache := startRedis(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "channel")
	assert.False(t, ok)

	want := models.ChannelStats{TotalSubscribers: 3, TotalVideos: 2, TotalViews: 50, TotalLikes: 7}
	cache.Set(ctx, "channel", want)

	got, ok := cache.Get(ctx, "channel")
	require.True(t, ok)
	assert.Equal(t, want, *got)

	cache.Delete(ctx, "channel")
	_, ok = cache.Get(ctx, "channel")
	assert.False(t, ok, "deleted entry is gone")

	cache.Set(ctx, "channel", want)
	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "channel")
		return !ok
	}, 5*time.Second, 100*time.Millisecond, "entry expires after ttl")
}
