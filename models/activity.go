package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID      string    `gorm:"size:12;index" json:"room_id"`
	UserID      uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Type        string    `gorm:"not null;size:30" json:"type"` // room_created, member_joined, member_left, expense_added, payments_finalized, room_locked, room_unlocked
	ReferenceID uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
