package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelStatsForNewChannel(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.Dashboard.GetChannelStats(f.ctx, f.user(t, "alice"))
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{}, *stats)

	videos, err := f.svc.Dashboard.GetChannelVideos(f.ctx, f.user(t, "bob"))
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)

	_, err = f.svc.Dashboard.GetChannelStats(f.ctx, "me")
	requireKind(t, err, apperr.KindInvalidReference)
}

func TestChannelStatsTotals(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")
	a := f.video(t, alice, "a")
	b := f.video(t, alice, "b")
	f.video(t, bob, "other channel")
	f.mem.SetViews(a.ID, 10)
	f.mem.SetViews(b.ID, 5)

	for _, fan := range []string{bob, carol} {
		_, err := f.svc.Subscriptions.ToggleSubscription(f.ctx, fan, alice)
		require.NoError(t, err)
		_, err = f.svc.Likes.ToggleVideoLike(f.ctx, fan, a.ID)
		require.NoError(t, err)
	}
	_, err := f.svc.Likes.ToggleVideoLike(f.ctx, carol, b.ID)
	require.NoError(t, err)

	stats, err := f.svc.Dashboard.GetChannelStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{
		TotalSubscribers: 2,
		TotalVideos:      2,
		TotalViews:       15,
		TotalLikes:       3,
	}, *stats)

	_, err = f.svc.Videos.TogglePublishStatus(f.ctx, alice, b.ID)
	require.NoError(t, err)
	videos, err := f.svc.Dashboard.GetChannelVideos(f.ctx, alice)
	require.NoError(t, err)
	assert.Len(t, videos, 2, "unpublished videos are listed")
}

// memoryStatsCache never expires entries, so only eviction refreshes them
type memoryStatsCache struct {
	mu      sync.Mutex
	entries map[string]models.ChannelStats
}

func (c *memoryStatsCache) Get(_ context.Context, id string) (*models.ChannelStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[id]
	return &s, ok
}

func (c *memoryStatsCache) Set(_ context.Context, id string, s models.ChannelStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = s
}

func (c *memoryStatsCache) Delete(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

func TestCachedChannelStatsFollowToggles(t *testing.T) {
	f := newFixture(t)
	f.svc = New(f.mem.Repositories(), f.storage, &memoryStatsCache{entries: map[string]models.ChannelStats{}})
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	v := f.video(t, alice, "a")

	read := func() models.ChannelStats {
		t.Helper()
		stats, err := f.svc.Dashboard.GetChannelStats(f.ctx, alice)
		require.NoError(t, err)
		return *stats
	}
	assert.Equal(t, models.ChannelStats{TotalVideos: 1}, read())

	_, err := f.svc.Likes.ToggleVideoLike(f.ctx, bob, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), read().TotalLikes)

	_, err = f.svc.Likes.ToggleVideoLike(f.ctx, bob, v.ID)
	require.NoError(t, err)
	assert.Zero(t, read().TotalLikes)

	_, err = f.svc.Subscriptions.ToggleSubscription(f.ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), read().TotalSubscribers)

	_, err = f.svc.Subscriptions.ToggleSubscription(f.ctx, bob, alice)
	require.NoError(t, err)
	assert.Zero(t, read().TotalSubscribers)
}
