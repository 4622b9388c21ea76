// Package stats computes channel statistics from independent point-in-time reads.
package stats

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/anonto42/nano-tube/backend/pkg/metrics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type SubscriberCounter interface {
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
}

type VideoReader interface {
	VideoTotalsByOwner(ctx context.Context, ownerID string) (models.VideoTotals, error)
	VideoIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type LikeCounter interface {
	CountLikes(ctx context.Context, kind models.TargetKind, targetIDs []string) (int64, error)
}

// Cache holds recent results. Implementations log their own failures.
type Cache interface {
	Get(ctx context.Context, channelID string) (*models.ChannelStats, bool)
	Set(ctx context.Context, channelID string, stats models.ChannelStats)
	Delete(ctx context.Context, channelID string)
}

// Aggregator computes ChannelStats
type Aggregator struct {
	subscriptions SubscriberCounter
	videos        VideoReader
	likes         LikeCounter
	cache         Cache
}

type Option func(*Aggregator)

// WithCache serves results from c for as long as c keeps them
func WithCache(c Cache) Option {
	return func(a *Aggregator) { a.cache = c }
}

func New(subs SubscriberCounter, videos VideoReader, likes LikeCounter, opts ...Option) *Aggregator {
	a := &Aggregator{subscriptions: subs, videos: videos, likes: likes}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ChannelStats runs the subscriber, video and like reads concurrently. The
// figures are not a consistent snapshot; each is correct as of its own read.
func (a *Aggregator) ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	if a.cache != nil {
		if cached, ok := a.cache.Get(ctx, channelID); ok {
			metrics.StatsCache.WithLabelValues("hit").Inc()
			return *cached, nil
		}
		metrics.StatsCache.WithLabelValues("miss").Inc()
	}

	var (
		stats  models.ChannelStats
		totals models.VideoTotals
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := a.subscriptions.CountSubscribers(gctx, channelID)
		if err != nil {
			return errors.Wrap(err, "count subscribers")
		}
		stats.TotalSubscribers = n
		return nil
	})

	g.Go(func() error {
		t, err := a.videos.VideoTotalsByOwner(gctx, channelID)
		if err != nil {
			return errors.Wrap(err, "video totals")
		}
		totals = t
		return nil
	})

	g.Go(func() error {
		videoIDs, err := a.videos.VideoIDsByOwner(gctx, channelID)
		if err != nil {
			return errors.Wrap(err, "owned video ids")
		}
		n, err := a.likes.CountLikes(gctx, models.TargetVideo, videoIDs)
		if err != nil {
			return errors.Wrap(err, "count likes")
		}
		stats.TotalLikes = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.ChannelStats{}, err
	}
	stats.TotalVideos = totals.Videos
	stats.TotalViews = totals.Views

	if a.cache != nil {
		a.cache.Set(ctx, channelID, stats)
	}
	logger.From(ctx).WithField("channel_id", channelID).Debug("channel stats computed")
	return stats, nil
}

// Invalidate drops any cached figures for the channel so the next read recomputes them
func (a *Aggregator) Invalidate(ctx context.Context, channelID string) {
	if a.cache == nil || channelID == "" {
		return
	}
	a.cache.Delete(ctx, channelID)
}
