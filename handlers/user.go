package handlers

import (
	"net/http"

	"meetsplit-backend/database"
	"meetsplit-backend/models"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/users/me
func GetProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var user models.GuestUser
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user.ToResponse())
}

// PUT /api/users/me
func UpdateProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.GuestUser
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	user.DisplayName = req.DisplayName
	if err := database.DB.Save(&user).Error; err != nil {
		utils.InternalError(c, "Failed to update profile")
		return
	}

	// Keep per-room display names in sync with the profile rename.
	database.DB.Model(&models.RoomMember{}).
		Where("user_id = ?", userID).
		Update("display_name", req.DisplayName)

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", user.ToResponse())
}

// PUT /api/users/me/fcm-token
func UpdateFCMToken(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Model(&models.GuestUser{}).
		Where("id = ?", userID).
		Update("fcm_token", req.Token).Error; err != nil {
		utils.InternalError(c, "Failed to update FCM token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "FCM token updated", nil)
}
