package models

import "time"

// Tweet is a short text post on a channel
type Tweet struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"ownerId" bson:"owner_id"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (t Tweet) View(owner OwnerProfile) TweetView {
	return TweetView{
		ID:        t.ID,
		Content:   t.Content,
		Owner:     owner,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TweetRequest is the body for creating or editing a tweet
type TweetRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}
