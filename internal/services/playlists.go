package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/internal/compose"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
)

// PlaylistService handles user-curated playlists
type PlaylistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository
	users     repositories.UserRepository
}

func NewPlaylistService(playlists repositories.PlaylistRepository, videos repositories.VideoRepository, users repositories.UserRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, actorID, name, description string) (*models.Playlist, error) {
	if err := requireID("user", actorID); err != nil {
		return nil, err
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperr.ValidationFailed("name and description are required")
	}

	playlist := &models.Playlist{OwnerID: actorID, Name: name, Description: description}
	if err := s.playlists.CreatePlaylist(ctx, playlist); err != nil {
		return nil, apperr.StoreFailure(err, "failed to create playlist")
	}
	return playlist, nil
}

// GetUserPlaylists lists a user's playlists. No playlists is an empty list.
func (s *PlaylistService) GetUserPlaylists(ctx context.Context, userID string) ([]models.Playlist, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	playlists, err := s.playlists.GetPlaylistsByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch playlists")
	}
	return playlists, nil
}

// GetPlaylistByID resolves the playlist's videos in list order. Videos that no
// longer exist are left out; a video whose owner is gone keeps a null owner.
func (s *PlaylistService) GetPlaylistByID(ctx context.Context, playlistID string) (*models.PlaylistView, error) {
	if err := requireID("playlist", playlistID); err != nil {
		return nil, err
	}
	playlist, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, "playlist not found", "failed to fetch playlist")
	}

	resolved, err := compose.JoinMany(ctx, []models.Playlist{*playlist}, compose.Many[models.Playlist, models.Video, models.Video]{
		Name:       "playlist.videos",
		LocalKeys:  func(p models.Playlist) []string { return p.VideoIDs },
		Fetch:      s.videos.GetVideosByIDs,
		ForeignKey: func(v models.Video) string { return v.ID },
		Project:    func(v models.Video) models.Video { return v },
	}, func(_ models.Playlist, videos []models.Video) []models.Video { return videos })
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch playlist videos")
	}

	join := ownerJoin(s.users, "playlist.video.owner", func(v models.Video) string { return v.OwnerID }, compose.Left)
	items, err := compose.JoinOne(ctx, resolved[0], join, func(v models.Video, owner *models.OwnerProfile) models.PlaylistVideo {
		return v.InPlaylist(owner)
	})
	if err != nil {
		return nil, apperr.StoreFailure(err, "failed to fetch video owners")
	}

	return &models.PlaylistView{
		ID:          playlist.ID,
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Videos:      items,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}

// AddVideo appends the video to the playlist. Adding it twice lists it twice.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*models.Playlist, error) {
	if err := s.checkIDs(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if _, err := s.videos.GetVideoByID(ctx, videoID); err != nil {
		return nil, storeError(err, "video not found", "failed to fetch video")
	}

	updated, err := s.playlists.AppendVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, storeError(err, "playlist not found", "failed to add video to playlist")
	}
	return updated, nil
}

// RemoveVideo drops every occurrence of the video from the playlist
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (*models.Playlist, error) {
	if err := s.checkIDs(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	updated, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, storeError(err, "playlist not found", "failed to remove video from playlist")
	}
	return updated, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, actorID, playlistID, name, description string) (*models.Playlist, error) {
	if err := requireID("playlist", playlistID); err != nil {
		return nil, err
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, apperr.ValidationFailed("name or description is required")
	}
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	var update models.PlaylistUpdate
	if name != "" {
		update.Name = &name
	}
	if description != "" {
		update.Description = &description
	}
	updated, err := s.playlists.UpdatePlaylist(ctx, playlistID, update)
	if err != nil {
		return nil, storeError(err, "playlist not found", "failed to update playlist")
	}
	return updated, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID, playlistID string) (*models.Playlist, error) {
	if err := requireID("playlist", playlistID); err != nil {
		return nil, err
	}
	playlist, err := s.owned(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}
	if err := s.playlists.DeletePlaylist(ctx, playlistID); err != nil {
		return nil, storeError(err, "playlist not found", "failed to delete playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) checkIDs(playlistID, videoID string) error {
	if err := requireID("playlist", playlistID); err != nil {
		return err
	}
	return requireID("video", videoID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID string) (*models.Playlist, error) {
	playlist, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, "playlist not found", "failed to fetch playlist")
	}
	if err := ensureOwner(playlist.OwnerID, actorID, "playlist"); err != nil {
		return nil, err
	}
	return playlist, nil
}
