package models

import "time"

// Playlist is an ordered, user-curated list of video ids. Duplicates are allowed.
type Playlist struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	VideoIDs    []string  `json:"videos" bson:"video_ids"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// PlaylistUpdate holds the fields an owner may change; nil fields are left untouched
type PlaylistUpdate struct {
	Name        *string
	Description *string
}

// CreatePlaylistRequest defines the request body for creating a playlist
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
}

// UpdatePlaylistRequest defines the request body for renaming a playlist
type UpdatePlaylistRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
