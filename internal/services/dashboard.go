package services

import (
	"context"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/stats"
)

// DashboardService serves a channel owner's own numbers and uploads
type DashboardService struct {
	videos repositories.VideoRepository
	stats  *stats.Aggregator
}

func NewDashboardService(videos repositories.VideoRepository, aggregator *stats.Aggregator) *DashboardService {
	return &DashboardService{videos: videos, stats: aggregator}
}

func (s *DashboardService) GetChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, error) {
	if err := requireID("channel", channelID); err != nil {
		return nil, err
	}
	result, err := s.stats.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to compute channel stats")
	}
	return &result, nil
}

// GetChannelVideos lists every video of the channel, published or not, newest first
func (s *DashboardService) GetChannelVideos(ctx context.Context, channelID string) ([]models.Video, error) {
	if err := requireID("channel", channelID); err != nil {
		return nil, err
	}
	videos, err := s.videos.FindVideos(ctx, models.VideoFilter{OwnerID: channelID})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch channel videos")
	}
	return videos, nil
}
