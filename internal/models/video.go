package models

import "time"

// Asset is an object held by the storage collaborator
type Asset struct {
	URL       string `json:"url" bson:"url"`
	StorageID string `json:"storageId" bson:"storage_id"`
}

// Video is a published media item stored in MongoDB
type Video struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	VideoFile   Asset     `json:"videoFile" bson:"video_file"`
	Thumbnail   Asset     `json:"thumbnail" bson:"thumbnail"`
	Duration    float64   `json:"duration" bson:"duration"` // seconds
	Views       int64     `json:"views" bson:"views"`
	IsPublished bool      `json:"isPublished" bson:"is_published"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// VideoFilter narrows a video listing
type VideoFilter struct {
	OwnerID string
	Query   string // matched case-insensitively against title and description
}

// VideoUpdate holds the fields an owner may change; nil fields are left untouched
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *Asset
}

// VideoTotals is the count and view sum over a set of videos
type VideoTotals struct {
	Videos int64 `bson:"total_videos"`
	Views  int64 `bson:"total_views"`
}

// View embeds owner into the video
func (v Video) View(owner OwnerProfile) VideoView {
	return VideoView{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       owner,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// Liked projects the video for the liked-videos listing, leaving out the media file
func (v Video) Liked(owner OwnerProfile, likedAt time.Time) LikedVideo {
	return LikedVideo{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       owner,
		CreatedAt:   v.CreatedAt,
		LikedAt:     likedAt,
	}
}

// InPlaylist projects the video for a playlist; owner is nil when the account is gone
func (v Video) InPlaylist(owner *OwnerProfile) PlaylistVideo {
	return PlaylistVideo{
		ID:          v.ID,
		Title:       v.Title,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       owner,
	}
}
