package handlers

import (
	"testing"

	"meetsplit-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildShareText_FullSummary(t *testing.T) {
	room := models.Room{ID: "AB23CD", Name: "Ski Trip", Currency: "USD"}
	alice := uuid.New()
	bob := uuid.New()

	s := models.RoomSummary{
		RoomID:   "AB23CD",
		RoomName: "Ski Trip",
		Members:  []string{"Alice", "Bob", "Charlie"},
		BestDates: []models.DateScoreResponse{
			{Date: "2024-06-01", AvailableCount: 3, IsPerfect: true},
			{Date: "2024-06-02", AvailableCount: 2},
			{Date: "2024-06-08", AvailableCount: 1},
		},
		TotalExpenses: 300,
		PerPersonAvg:  100,
		Debts: []models.DebtResponse{
			{From: bob, FromName: "Bob", To: alice, ToName: "Alice", Amount: 100, Currency: "USD"},
		},
	}

	text := buildShareText(room, s)

	require.Contains(t, text, "--- Ski Trip Summary ---")
	require.Contains(t, text, "Room Code: AB23CD")
	require.Contains(t, text, "Members: Alice, Bob, Charlie")
	require.Contains(t, text, "Best Date: Saturday, June 1, 2024 (3/3 free) - Perfect match!")
	require.Contains(t, text, "Runner-ups: Jun 2 (2/3), Jun 8 (1/3)")
	require.Contains(t, text, "Total Expenses: USD 300.00")
	require.Contains(t, text, "Per Person (avg): USD 100.00")
	require.Contains(t, text, "Bob -> Alice: USD 100.00")
}

func TestBuildShareText_SettledRoom(t *testing.T) {
	room := models.Room{ID: "XY34ZW", Name: "Dinner", Currency: "EUR"}
	s := models.RoomSummary{
		RoomID:        "XY34ZW",
		RoomName:      "Dinner",
		Members:       []string{"Dana", "Eli"},
		TotalExpenses: 80,
		PerPersonAvg:  40,
	}

	text := buildShareText(room, s)

	require.Contains(t, text, "All settled up!")
	require.NotContains(t, text, "Settlements:")
	require.NotContains(t, text, "Best Date:")
}

func TestBuildShareText_NoExpenses(t *testing.T) {
	room := models.Room{ID: "QQ22RR", Name: "Picnic", Currency: "USD"}
	s := models.RoomSummary{
		RoomID:   "QQ22RR",
		RoomName: "Picnic",
		Members:  []string{"Finn"},
		BestDates: []models.DateScoreResponse{
			{Date: "2024-07-04", AvailableCount: 1, IsPerfect: true},
		},
	}

	text := buildShareText(room, s)

	require.Contains(t, text, "Best Date: Thursday, July 4, 2024 (1/1 free)")
	require.NotContains(t, text, "Total Expenses")
	require.NotContains(t, text, "All settled up!")
}

func TestBuildShareText_CapsRunnerUpsAtThree(t *testing.T) {
	room := models.Room{ID: "AA33BB", Name: "Camp", Currency: "USD"}
	s := models.RoomSummary{
		RoomName: "Camp",
		Members:  []string{"A", "B"},
		BestDates: []models.DateScoreResponse{
			{Date: "2024-08-01", AvailableCount: 2},
			{Date: "2024-08-02", AvailableCount: 2},
			{Date: "2024-08-03", AvailableCount: 1},
			{Date: "2024-08-04", AvailableCount: 1},
			{Date: "2024-08-05", AvailableCount: 1},
		},
	}

	text := buildShareText(room, s)

	require.Contains(t, text, "Aug 2")
	require.Contains(t, text, "Aug 4")
	require.NotContains(t, text, "Aug 5")
}

func TestFormatShareDate_PassesThroughMalformed(t *testing.T) {
	require.Equal(t, "not-a-date", formatShareDate("not-a-date", "Jan 2"))
	require.Equal(t, "Jun 1", formatShareDate("2024-06-01", "Jan 2"))
}
