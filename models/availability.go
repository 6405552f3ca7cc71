package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Availability is one member's answer for one calendar day. A missing row
// means "no opinion", which is distinct from an explicit "not available".
type Availability struct {
	RoomID      string         `gorm:"primaryKey;size:12" json:"room_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Date        string         `gorm:"primaryKey;size:10" json:"date"` // YYYY-MM-DD
	IsAvailable bool           `gorm:"not null" json:"is_available"`
	TimeSlots   pq.StringArray `gorm:"type:text[]" json:"time_slots,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Request structs
type DateAnswer struct {
	IsAvailable bool     `json:"is_available"`
	TimeSlots   []string `json:"time_slots"`
}

// UpdateAvailabilityRequest replaces the caller's whole availability map
// for the room (last writer wins, no per-date merging). An empty map is
// legal and clears everything the caller previously submitted.
type UpdateAvailabilityRequest struct {
	Dates map[string]DateAnswer `json:"dates"`
}

// Response structs
type AvailabilityResponse struct {
	UserID      uuid.UUID             `json:"user_id"`
	DisplayName string                `json:"display_name"`
	Dates       map[string]DateAnswer `json:"dates"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type DateScoreResponse struct {
	Date           string   `json:"date"`
	AvailableCount int      `json:"available_count"`
	TotalMembers   int      `json:"total_members"`
	AvailableUsers []string `json:"available_users"`
	MissingUsers   []string `json:"missing_users"`
	MissingNames   []string `json:"missing_names"`
	IsPerfect      bool     `json:"is_perfect"`
}
