package models

import "time"

// TargetKind is the kind of entity a like points at
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// Target identifies exactly one likeable entity
type Target struct {
	Kind TargetKind `json:"kind" gorm:"column:target_kind;size:16;not null;uniqueIndex:idx_like_edge,priority:2;index:idx_like_target,priority:1"`
	ID   string     `json:"id" gorm:"column:target_id;size:24;not null;uniqueIndex:idx_like_edge,priority:3;index:idx_like_target,priority:2"`
}

func VideoTarget(id string) Target   { return Target{Kind: TargetVideo, ID: id} }
func CommentTarget(id string) Target { return Target{Kind: TargetComment, ID: id} }
func TweetTarget(id string) Target   { return Target{Kind: TargetTweet, ID: id} }

func (t Target) String() string { return string(t.Kind) + ":" + t.ID }

// Like is the edge between a user and a liked entity. There is at most one per (user, target).
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:24"`
	LikedBy   string    `json:"likedBy" gorm:"size:24;not null;uniqueIndex:idx_like_edge,priority:1"`
	Target    Target    `json:"target" gorm:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleLikeResult reports the like state after a toggle
type ToggleLikeResult struct {
	IsLiked bool `json:"isLiked"`
}
