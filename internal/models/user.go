package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the local projection of an account managed by the auth provider
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:24"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	FullName    string    `json:"fullName"`
	AvatarURL   string    `json:"avatarUrl"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"` // set only for accounts created through Firebase
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerProfile is the public subset of a User embedded into composed views
type OwnerProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// Profile projects the user onto its public fields
func (u User) Profile() OwnerProfile {
	return OwnerProfile{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
