package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"meetsplit-backend/database"
	"meetsplit-backend/engine"
	"meetsplit-backend/models"
	"meetsplit-backend/services"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/rooms/:id/summary
func GetRoomSummary(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	summary, err := buildRoomSummary(roomID)
	if err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// POST /api/rooms/:id/summary/share
func ShareRoomSummary(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	summary, err := buildRoomSummary(roomID)
	if err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	go services.GetMailer().SendSummary(req.Email, summary.RoomName, summary.ShareText)

	utils.SuccessResponse(c, http.StatusOK, "Summary sent", nil)
}

func buildRoomSummary(roomID string) (models.RoomSummary, error) {
	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return models.RoomSummary{}, err
	}

	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&members)

	memberNamesList := make([]string, len(members))
	for i, m := range members {
		memberNamesList[i] = m.DisplayName
	}

	scores, memberCount := scoreRoomDates(roomID)
	bestDates := buildDateScoreResponses(roomID, scores, memberCount)

	debts := engine.MinimizeDebts(roomBalances(roomID))
	names := memberNames(roomID)
	debtResponses := buildDebtResponses(debts, names, room.Currency)

	totalExpenses := roomExpenseTotal(roomID)
	perPersonAvg := 0.0
	if len(members) > 0 {
		perPersonAvg = utils.RoundToTwo(totalExpenses / float64(len(members)))
	}

	summary := models.RoomSummary{
		RoomID:        roomID,
		RoomName:      room.Name,
		Members:       memberNamesList,
		BestDates:     bestDates,
		TotalExpenses: totalExpenses,
		PerPersonAvg:  perPersonAvg,
		Debts:         debtResponses,
	}
	summary.ShareText = buildShareText(room, summary)

	return summary, nil
}

// buildShareText renders the plain-text recap members paste into a group
// chat.
func buildShareText(room models.Room, s models.RoomSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "--- %s Summary ---\n", s.RoomName)
	fmt.Fprintf(&b, "Room Code: %s\n", s.RoomID)
	fmt.Fprintf(&b, "Members: %s\n\n", strings.Join(s.Members, ", "))

	if len(s.BestDates) > 0 {
		best := s.BestDates[0]
		fmt.Fprintf(&b, "Best Date: %s (%d/%d free)", formatShareDate(best.Date, "Monday, January 2, 2006"),
			best.AvailableCount, len(s.Members))
		if best.IsPerfect {
			b.WriteString(" - Perfect match!")
		}
		b.WriteString("\n")

		if len(s.BestDates) > 1 {
			runnerUps := s.BestDates[1:]
			if len(runnerUps) > 3 {
				runnerUps = runnerUps[:3]
			}
			parts := make([]string, len(runnerUps))
			for i, d := range runnerUps {
				parts[i] = fmt.Sprintf("%s (%d/%d)", formatShareDate(d.Date, "Jan 2"), d.AvailableCount, len(s.Members))
			}
			fmt.Fprintf(&b, "Runner-ups: %s\n", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}

	if s.TotalExpenses > 0 {
		fmt.Fprintf(&b, "Total Expenses: %s %.2f\n", room.Currency, s.TotalExpenses)
		fmt.Fprintf(&b, "Per Person (avg): %s %.2f\n\n", room.Currency, s.PerPersonAvg)

		if len(s.Debts) > 0 {
			b.WriteString("Settlements:\n")
			for _, d := range s.Debts {
				fmt.Fprintf(&b, "  %s -> %s: %s %.2f\n", d.FromName, d.ToName, d.Currency, d.Amount)
			}
		} else {
			b.WriteString("All settled up!\n")
		}
	}

	return b.String()
}

func formatShareDate(date string, layout string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date // malformed dates pass through as opaque strings
	}
	return t.Format(layout)
}
