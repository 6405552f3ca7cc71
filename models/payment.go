package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentModeEach   = "each"
	PaymentModeManual = "manual"
)

// RoomPayment is a member's running total handed over toward all of the
// room's expenses combined. At most one row per member per room, and the
// whole set is overwritten on every finalize (not accumulated).
type RoomPayment struct {
	RoomID     string    `gorm:"primaryKey;size:12" json:"room_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PaidAmount float64   `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Request structs
type PayerInput struct {
	UserID string `json:"user_id" binding:"required"`
	Amount string `json:"amount"` // form input; validated, empty = not entered
}

// FinalizePaymentsRequest records who actually paid, in one of two modes:
// "each" flags members as having paid their equal share, "manual" names
// explicit payers whose amounts must cover the bill.
type FinalizePaymentsRequest struct {
	Mode        string       `json:"mode" binding:"required,oneof=each manual"`
	PaidMembers []string     `json:"paid_members"` // each mode
	Payers      []PayerInput `json:"payers"`       // manual mode
}

// Response structs
type PaymentPreviewResponse struct {
	Mode     string              `json:"mode"`
	OwedList []MemberOwedResponse `json:"owed_list"`
	IsValid  bool                `json:"is_valid"`
	Delta    float64             `json:"delta"`
	Debts    []DebtResponse      `json:"debts"`
}

type MemberOwedResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	OwedAmount  float64   `json:"owed_amount"`
	HasPaid     bool      `json:"has_paid"`
}
