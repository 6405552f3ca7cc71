package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is keyed by its short shareable code (e.g. "K4PX7Q") rather than a
// UUID: the code is the join link and the only handle members ever see.
type Room struct {
	ID           string       `gorm:"primaryKey;size:12" json:"room_id"`
	Name         string       `gorm:"not null;size:100" json:"name"`
	AdminID      uuid.UUID    `gorm:"type:uuid" json:"admin_id"`
	IsLocked     bool         `gorm:"default:false" json:"is_locked"`
	Currency     string       `gorm:"default:USD;size:3" json:"currency"`
	AdminPINHash string       `json:"-"`
	Announcement Announcement `gorm:"embedded;embeddedPrefix:announcement_" json:"announcement"`
	Members      []RoomMember `gorm:"foreignKey:RoomID" json:"members,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Announcement is the admin-edited notice block shown in the room header.
type Announcement struct {
	Notice string `gorm:"size:500" json:"notice,omitempty"`
	Place  string `gorm:"size:200" json:"place,omitempty"`
	Time   string `gorm:"size:100" json:"time,omitempty"`
	Menu   string `gorm:"size:200" json:"menu,omitempty"`
}

type RoomMember struct {
	RoomID      string    `gorm:"primaryKey;size:12" json:"room_id"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DisplayName string    `gorm:"not null;size:50" json:"display_name"` // denormalized
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Request structs
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Currency    string `json:"currency"`
	AdminPIN    string `json:"admin_pin"`
	DisplayName string `json:"display_name" binding:"required"`
}

type JoinRoomRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type LockRoomRequest struct {
	Locked   bool   `json:"locked"`
	AdminPIN string `json:"admin_pin"`
}

type AnnouncementRequest struct {
	Notice   string `json:"notice"`
	Place    string `json:"place"`
	Time     string `json:"time"`
	Menu     string `json:"menu"`
	AdminPIN string `json:"admin_pin"`
}

// Response structs
type RoomResponse struct {
	RoomID       string               `json:"room_id"`
	Name         string               `json:"name"`
	AdminID      uuid.UUID            `json:"admin_id"`
	IsLocked     bool                 `json:"is_locked"`
	Currency     string               `json:"currency"`
	Announcement Announcement         `json:"announcement"`
	Members      []RoomMemberResponse `json:"members"`
	CreatedAt    time.Time            `json:"created_at"`
}

type RoomMemberResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}
