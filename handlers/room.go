package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"meetsplit-backend/database"
	"meetsplit-backend/models"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// POST /api/rooms
func CreateRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	room := models.Room{
		ID:       utils.GenerateRoomCode(6),
		Name:     req.Name,
		AdminID:  userID,
		Currency: currency,
	}

	if req.AdminPIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPIN), bcrypt.DefaultCost)
		if err != nil {
			utils.InternalError(c, "Failed to secure admin PIN")
			return
		}
		room.AdminPINHash = string(hash)
	}

	if err := database.DB.Create(&room).Error; err != nil {
		utils.InternalError(c, "Failed to create room")
		return
	}

	// Creator joins immediately
	member := models.RoomMember{
		RoomID:      room.ID,
		UserID:      userID,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	database.DB.Create(&member)

	database.DB.Create(&models.Activity{
		RoomID:      room.ID,
		UserID:      userID,
		Type:        "room_created",
		Description: fmt.Sprintf("%s created room \"%s\"", member.DisplayName, room.Name),
	})

	utils.SuccessResponse(c, http.StatusCreated, "Room created", buildRoomResponse(room.ID))
}

// GET /api/rooms/:id
func GetRoom(c *gin.Context) {
	roomID := roomCode(c)

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", buildRoomResponse(roomID))
}

// POST /api/rooms/:id/join
func JoinRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	var req models.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		utils.BadRequest(c, "Display name is required")
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	// Already a member: nothing to do
	if isMember(roomID, userID) {
		utils.SuccessResponse(c, http.StatusOK, "Already a member", buildRoomResponse(roomID))
		return
	}

	// Identity recovery: a guest who lost their session rejoins under the
	// same display name and takes over that membership, including its
	// availability, expense shares and payments. This runs before the
	// locked check so returning members of a locked room can get back in.
	if merged, err := reconcileMemberByName(roomID, userID, displayName); err != nil {
		utils.InternalError(c, "Failed to rejoin room")
		return
	} else if merged {
		database.PublishRoomEvent(roomID, "member_joined")
		utils.SuccessResponse(c, http.StatusOK, "Welcome back", buildRoomResponse(roomID))
		return
	}

	if room.IsLocked {
		utils.ErrorResponse(c, http.StatusForbidden, "This room is locked. No new members can join.")
		return
	}

	member := models.RoomMember{
		RoomID:      roomID,
		UserID:      userID,
		DisplayName: displayName,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		utils.InternalError(c, "Failed to join room")
		return
	}

	database.DB.Create(&models.Activity{
		RoomID:      roomID,
		UserID:      userID,
		Type:        "member_joined",
		Description: fmt.Sprintf("%s joined %s", displayName, room.Name),
	})
	database.PublishRoomEvent(roomID, "member_joined")

	utils.SuccessResponse(c, http.StatusCreated, "Joined room", buildRoomResponse(roomID))
}

// DELETE /api/rooms/:id/members/:uid
func RemoveMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	memberUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	// Only the admin or the member themselves can remove a membership
	if room.AdminID != userID && userID != memberUID {
		utils.Unauthorized(c, "Only the room admin can remove other members")
		return
	}

	var member models.RoomMember
	if err := database.DB.Where("room_id = ? AND user_id = ?", roomID, memberUID).First(&member).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	database.DB.Where("room_id = ? AND user_id = ?", roomID, memberUID).Delete(&models.RoomMember{})

	database.DB.Create(&models.Activity{
		RoomID:      roomID,
		UserID:      userID,
		Type:        "member_left",
		Description: fmt.Sprintf("%s left %s", member.DisplayName, room.Name),
	})
	database.PublishRoomEvent(roomID, "member_left")

	utils.SuccessResponse(c, http.StatusOK, "Member removed", nil)
}

// PUT /api/rooms/:id/lock
func LockRoom(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	var req models.LockRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	if !isRoomAdmin(room, userID, req.AdminPIN) {
		utils.Unauthorized(c, "Admin access required")
		return
	}

	database.DB.Model(&room).Update("is_locked", req.Locked)

	activityType := "room_unlocked"
	if req.Locked {
		activityType = "room_locked"
	}
	database.DB.Create(&models.Activity{
		RoomID: roomID,
		UserID: userID,
		Type:   activityType,
	})
	database.PublishRoomEvent(roomID, activityType)

	utils.SuccessResponse(c, http.StatusOK, "Room updated", buildRoomResponse(roomID))
}

// PUT /api/rooms/:id/announcement
func UpdateAnnouncement(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	var req models.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	if !isRoomAdmin(room, userID, req.AdminPIN) {
		utils.Unauthorized(c, "Admin access required")
		return
	}

	database.DB.Model(&room).Updates(map[string]interface{}{
		"announcement_notice": req.Notice,
		"announcement_place":  req.Place,
		"announcement_time":   req.Time,
		"announcement_menu":   req.Menu,
	})
	database.PublishRoomEvent(roomID, "announcement_updated")

	utils.SuccessResponse(c, http.StatusOK, "Announcement updated", buildRoomResponse(roomID))
}

// GET /api/rooms/:id/activity
func GetRoomActivity(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var activities []models.Activity
	database.DB.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&activities)

	utils.SuccessResponse(c, http.StatusOK, "", activities)
}

// reconcileMemberByName re-points an existing membership (and every record
// hanging off it) at a new user ID when a returning guest joins with a
// display name the room already knows. Find-or-merge, scoped to the room.
func reconcileMemberByName(roomID string, newUserID uuid.UUID, displayName string) (bool, error) {
	var existing models.RoomMember
	err := database.DB.Where("room_id = ? AND LOWER(display_name) = LOWER(?)", roomID, displayName).
		First(&existing).Error
	if err != nil {
		return false, nil // no namesake membership, normal join applies
	}

	oldUserID := existing.UserID
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Membership key is (room_id, user_id); swap via delete + insert.
		if err := tx.Where("room_id = ? AND user_id = ?", roomID, oldUserID).
			Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.RoomMember{
			RoomID:      roomID,
			UserID:      newUserID,
			DisplayName: existing.DisplayName,
			JoinedAt:    existing.JoinedAt,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Availability{}).
			Where("room_id = ? AND user_id = ?", roomID, oldUserID).
			Update("user_id", newUserID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ExpenseParticipant{}).
			Where("room_id = ? AND user_id = ?", roomID, oldUserID).
			Update("user_id", newUserID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RoomPayment{}).
			Where("room_id = ? AND user_id = ?", roomID, oldUserID).
			Update("user_id", newUserID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Expense{}).
			Where("room_id = ? AND paid_by = ?", roomID, oldUserID).
			Update("paid_by", newUserID).Error; err != nil {
			return err
		}

		// Adminship follows the membership
		if err := tx.Model(&models.Room{}).
			Where("id = ? AND admin_id = ?", roomID, oldUserID).
			Update("admin_id", newUserID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// isRoomAdmin grants admin access to the admin identity itself, or to any
// caller presenting the room's PIN, the escape hatch for an admin whose
// anonymous session was lost.
func isRoomAdmin(room models.Room, userID uuid.UUID, pin string) bool {
	if room.AdminID == userID {
		return true
	}
	if room.AdminPINHash != "" && pin != "" {
		return bcrypt.CompareHashAndPassword([]byte(room.AdminPINHash), []byte(pin)) == nil
	}
	return false
}

func isMember(roomID string, userID uuid.UUID) bool {
	var member models.RoomMember
	err := database.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	return err == nil
}

func roomCode(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("id")))
}

// memberNames returns the display-name lookup for a room. Stale userIds
// (purged by retention) resolve to "Unknown" at this display boundary.
func memberNames(roomID string) map[uuid.UUID]string {
	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Find(&members)

	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.DisplayName
	}
	return names
}

func lookupName(names map[uuid.UUID]string, userID uuid.UUID) string {
	if name, ok := names[userID]; ok {
		return name
	}
	return "Unknown"
}

func buildRoomResponse(roomID string) models.RoomResponse {
	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return models.RoomResponse{}
	}

	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&members)

	memberResponses := make([]models.RoomMemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = models.RoomMemberResponse{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			JoinedAt:    m.JoinedAt,
		}
	}

	return models.RoomResponse{
		RoomID:       room.ID,
		Name:         room.Name,
		AdminID:      room.AdminID,
		IsLocked:     room.IsLocked,
		Currency:     room.Currency,
		Announcement: room.Announcement,
		Members:      memberResponses,
		CreatedAt:    room.CreatedAt,
	}
}
