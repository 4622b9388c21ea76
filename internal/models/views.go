package models

import "time"

// VideoView is a video with its owner embedded
type VideoView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoFile   Asset        `json:"videoFile"`
	Thumbnail   Asset        `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	Owner       OwnerProfile `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CommentView struct {
	ID        string       `json:"id"`
	VideoID   string       `json:"videoId"`
	Content   string       `json:"content"`
	Owner     OwnerProfile `json:"owner"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type TweetView struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Owner     OwnerProfile `json:"owner"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// LikedVideo is a video in the liked listing. The media file is not exposed.
type LikedVideo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnail   Asset        `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	Owner       OwnerProfile `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
	LikedAt     time.Time    `json:"likedAt"`
}

type PlaylistVideo struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Thumbnail   Asset         `json:"thumbnail"`
	Duration    float64       `json:"duration"`
	Views       int64         `json:"views"`
	IsPublished bool          `json:"isPublished"`
	Owner       *OwnerProfile `json:"owner"`
}

// PlaylistView is a playlist with its videos resolved in list order
type PlaylistView struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Videos      []PlaylistVideo `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ChannelStats is a point-in-time summary of a channel
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}
