package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLikeUniqueEdge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	user, video := ids.New(), ids.New()

	require.NoError(t, s.CreateLike(ctx, &models.Like{LikedBy: user, Target: models.VideoTarget(video)}))
	err := s.CreateLike(ctx, &models.Like{LikedBy: user, Target: models.VideoTarget(video)})
	require.ErrorIs(t, err, ErrDuplicate)

	// same id, different kind is a different edge
	require.NoError(t, s.CreateLike(ctx, &models.Like{LikedBy: user, Target: models.CommentTarget(video)}))

	n, err := s.CountLikes(ctx, models.TargetVideo, []string{video})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	removed, err := s.DeleteLike(ctx, user, models.VideoTarget(video))
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteLike(ctx, user, models.VideoTarget(video))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryConcurrentSubscriptionInserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	subscriber, channel := ids.New(), ids.New()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateSubscription(ctx, &models.Subscription{SubscriberID: subscriber, ChannelID: channel})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicate):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	count, err := s.CountSubscribers(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryPlaylistPushPull(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a, b := ids.New(), ids.New()

	p := &models.Playlist{OwnerID: ids.New(), Name: "mix", Description: "d"}
	require.NoError(t, s.CreatePlaylist(ctx, p))

	for _, v := range []string{a, b, a} {
		_, err := s.AppendVideo(ctx, p.ID, v)
		require.NoError(t, err)
	}

	got, err := s.GetPlaylistByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, a}, got.VideoIDs)

	got, err = s.RemoveVideo(ctx, p.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, got.VideoIDs)

	_, err = s.AppendVideo(ctx, ids.New(), a)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFindVideos(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner, other := ids.New(), ids.New()

	first := &models.Video{OwnerID: owner, Title: "Go Concurrency", Description: "channels"}
	second := &models.Video{OwnerID: other, Title: "Cooking", Description: "pasta with GO sauce"}
	third := &models.Video{OwnerID: owner, Title: "Rust", Description: "ownership"}
	for _, v := range []*models.Video{first, second, third} {
		require.NoError(t, s.CreateVideo(ctx, v))
	}

	all, err := s.FindVideos(ctx, models.VideoFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID, "newest first")

	byQuery, err := s.FindVideos(ctx, models.VideoFilter{Query: "go"})
	require.NoError(t, err)
	assert.Len(t, byQuery, 2)

	byOwner, err := s.FindVideos(ctx, models.VideoFilter{OwnerID: owner, Query: "go"})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, first.ID, byOwner[0].ID)
}

func TestMemoryVideoTotals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner := ids.New()

	totals, err := s.VideoTotalsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, totals)

	v := &models.Video{OwnerID: owner, Title: "t"}
	require.NoError(t, s.CreateVideo(ctx, v))
	s.SetViews(v.ID, 42)

	totals, err = s.VideoTotalsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, models.VideoTotals{Videos: 1, Views: 42}, totals)
}

func TestMemoryGetMalformedID(t *testing.T) {
	_, err := NewMemoryStore().GetVideoByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}
