package models

import "time"

// Comment is a text reply attached to a video
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	VideoID   string    `json:"videoId" bson:"video_id"`
	OwnerID   string    `json:"ownerId" bson:"owner_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// View embeds owner into the comment
func (c Comment) View(owner OwnerProfile) CommentView {
	return CommentView{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		Owner:     owner,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CommentRequest is the body for adding or editing a comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
