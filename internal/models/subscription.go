package models

import "time"

// Subscription is the edge between a subscriber and a channel (a user)
type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey;size:24"`
	SubscriberID string    `json:"subscriberId" gorm:"size:24;not null;uniqueIndex:idx_subscriber_channel,priority:1"`
	ChannelID    string    `json:"channelId" gorm:"size:24;not null;uniqueIndex:idx_subscriber_channel,priority:2;index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToggleSubscriptionResult reports the subscription state after a toggle
type ToggleSubscriptionResult struct {
	IsSubscribed bool `json:"isSubscribed"`
}
