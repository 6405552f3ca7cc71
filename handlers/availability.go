package handlers

import (
	"net/http"

	"meetsplit-backend/database"
	"meetsplit-backend/engine"
	"meetsplit-backend/models"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PUT /api/rooms/:id/availability
//
// Replaces the caller's entire availability map for the room. Last writer
// wins; there is no per-date merge.
func UpdateAvailability(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND user_id = ?", roomID, userID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		for date, answer := range req.Dates {
			row := models.Availability{
				RoomID:      roomID,
				UserID:      userID,
				Date:        date,
				IsAvailable: answer.IsAvailable,
				TimeSlots:   answer.TimeSlots,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalError(c, "Failed to update availability")
		return
	}

	database.PublishRoomEvent(roomID, "availability_updated")
	utils.SuccessResponse(c, http.StatusOK, "Availability updated", nil)
}

// GET /api/rooms/:id/availability
func GetAvailability(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	names := memberNames(roomID)

	var rows []models.Availability
	database.DB.Where("room_id = ?", roomID).Find(&rows)

	grouped := make(map[uuid.UUID]*models.AvailabilityResponse)
	for _, row := range rows {
		rec, ok := grouped[row.UserID]
		if !ok {
			rec = &models.AvailabilityResponse{
				UserID:      row.UserID,
				DisplayName: lookupName(names, row.UserID),
				Dates:       make(map[string]models.DateAnswer),
				UpdatedAt:   row.UpdatedAt,
			}
			grouped[row.UserID] = rec
		}
		rec.Dates[row.Date] = models.DateAnswer{
			IsAvailable: row.IsAvailable,
			TimeSlots:   row.TimeSlots,
		}
		if row.UpdatedAt.After(rec.UpdatedAt) {
			rec.UpdatedAt = row.UpdatedAt
		}
	}

	responses := make([]models.AvailabilityResponse, 0, len(grouped))
	for _, rec := range grouped {
		responses = append(responses, *rec)
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/rooms/:id/best-dates
func GetBestDates(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	scores, memberCount := scoreRoomDates(roomID)
	utils.SuccessResponse(c, http.StatusOK, "", buildDateScoreResponses(roomID, scores, memberCount))
}

// scoreRoomDates loads the room's availability snapshot and runs the date
// scorer over it. Only current members count toward allMemberIDs; rows left
// behind by members who left still tally into availableUsers, per engine
// contract.
func scoreRoomDates(roomID string) ([]engine.DateScore, int) {
	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&members)

	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID.String()
	}

	var rows []models.Availability
	database.DB.Where("room_id = ?", roomID).Find(&rows)

	byUser := make(map[string]engine.AvailabilityRecord)
	var order []string
	for _, row := range rows {
		key := row.UserID.String()
		rec, ok := byUser[key]
		if !ok {
			rec = engine.AvailabilityRecord{UserID: key, Dates: make(map[string]engine.DateStatus)}
			order = append(order, key)
		}
		rec.Dates[row.Date] = engine.DateStatus{
			IsAvailable: row.IsAvailable,
			TimeSlots:   row.TimeSlots,
		}
		byUser[key] = rec
	}

	records := make([]engine.AvailabilityRecord, 0, len(byUser))
	for _, key := range order {
		records = append(records, byUser[key])
	}

	return engine.ScoreDates(records, memberIDs), len(members)
}

func buildDateScoreResponses(roomID string, scores []engine.DateScore, memberCount int) []models.DateScoreResponse {
	names := memberNames(roomID)

	responses := make([]models.DateScoreResponse, len(scores))
	for i, s := range scores {
		missingNames := make([]string, len(s.MissingUsers))
		for j, id := range s.MissingUsers {
			uid, err := uuid.Parse(id)
			if err != nil {
				missingNames[j] = "Unknown"
				continue
			}
			missingNames[j] = lookupName(names, uid)
		}
		responses[i] = models.DateScoreResponse{
			Date:           s.Date,
			AvailableCount: s.AvailableCount,
			TotalMembers:   memberCount,
			AvailableUsers: s.AvailableUsers,
			MissingUsers:   s.MissingUsers,
			MissingNames:   missingNames,
			IsPerfect:      memberCount > 0 && s.AvailableCount == memberCount,
		}
	}
	return responses
}
