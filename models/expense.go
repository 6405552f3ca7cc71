package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SplitTypeEqual  = "EQUAL"
	SplitTypeManual = "MANUAL"
)

// Expense is immutable once created; there is no update path. Stale
// expenses disappear only when the retention job purges their room.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"expense_id"`
	RoomID      string    `gorm:"size:12;index" json:"room_id"`
	PaidBy      uuid.UUID `gorm:"type:uuid" json:"paid_by"`
	Description string    `gorm:"not null;size:255" json:"description"`
	TotalAmount float64   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	SplitType   string    `gorm:"not null;size:10" json:"split_type"` // EQUAL, MANUAL
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExpenseParticipant is one member's share of one expense. The shares of
// an expense should sum to its total; the engine does not enforce this and
// a violation simply skews balances.
type ExpenseParticipant struct {
	ExpenseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"expense_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoomID     string    `gorm:"size:12;index" json:"room_id"` // denormalized for retention sweeps
	OwedAmount float64   `gorm:"type:decimal(12,2);not null" json:"owed_amount"`
	HasPaid    bool      `gorm:"default:false" json:"has_paid"`
	CreatedAt  time.Time `json:"created_at"`
}

// Request structs
type CreateExpenseRequest struct {
	Description string       `json:"description" binding:"required"`
	TotalAmount float64      `json:"total_amount" binding:"required,gte=0"`
	SplitType   string       `json:"split_type" binding:"required,oneof=EQUAL MANUAL"`
	Splits      []SplitInput `json:"splits"` // required for MANUAL
}

type SplitInput struct {
	UserID     string  `json:"user_id" binding:"required"`
	OwedAmount float64 `json:"owed_amount"`
}

// Response structs
type ExpenseResponse struct {
	ExpenseID   uuid.UUID              `json:"expense_id"`
	RoomID      string                 `json:"room_id"`
	PaidBy      uuid.UUID              `json:"paid_by"`
	PayerName   string                 `json:"payer_name"`
	Description string                 `json:"description"`
	TotalAmount float64                `json:"total_amount"`
	SplitType   string                 `json:"split_type"`
	Splits      []SplitDetailResponse  `json:"splits"`
	CreatedAt   time.Time              `json:"created_at"`
}

type SplitDetailResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	OwedAmount float64   `json:"owed_amount"`
	HasPaid    bool      `json:"has_paid"`
}
