package models

import "github.com/google/uuid"

// DebtResponse is a simplified debt between two members
type DebtResponse struct {
	From     uuid.UUID `json:"from"`
	FromName string    `json:"from_name"`
	To       uuid.UUID `json:"to"`
	ToName   string    `json:"to_name"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

// MemberBalance is a member's signed net position: positive means they are
// owed money, negative means they owe.
type MemberBalance struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Balance     float64   `json:"balance"`
}

// RoomBalanceSummary is returned for GET /api/rooms/:id/balances
type RoomBalanceSummary struct {
	RoomID     string          `json:"room_id"`
	RoomName   string          `json:"room_name"`
	Balances   []MemberBalance `json:"balances"`
	Debts      []DebtResponse  `json:"debts"`
	TotalSpent float64         `json:"total_spent"`
	Currency   string          `json:"currency"`
}

// RoomSummary is returned for GET /api/rooms/:id/summary
type RoomSummary struct {
	RoomID        string              `json:"room_id"`
	RoomName      string              `json:"room_name"`
	Members       []string            `json:"members"`
	BestDates     []DateScoreResponse `json:"best_dates"`
	TotalExpenses float64             `json:"total_expenses"`
	PerPersonAvg  float64             `json:"per_person_avg"`
	Debts         []DebtResponse      `json:"debts"`
	ShareText     string              `json:"share_text"`
}
