package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestUser is an anonymous identity issued on demand. There are no
// accounts: a guest exists only to give availability answers and expenses a
// stable userId, and is purged together with stale rooms.
type GuestUser struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"not null;size:50" json:"display_name"`
	IsAnonymous bool      `gorm:"default:true" json:"is_anonymous"`
	FCMToken    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *GuestUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Request structs
type GuestRequest struct {
	DisplayName string `json:"display_name"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Response struct (what we return to clients)
type GuestResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *GuestUser) ToResponse() GuestResponse {
	return GuestResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   u.CreatedAt,
	}
}
