package handlers

import (
	"net/http"
	"strings"

	"meetsplit-backend/database"
	"meetsplit-backend/models"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthResponse struct {
	Token string               `json:"token"`
	User  models.GuestResponse `json:"user"`
}

// POST /auth/guest
//
// Issues an anonymous identity. No registration: a fresh guest user is
// created unless the caller presents a still-valid token, in which case the
// same identity is re-issued so a returning visitor keeps their userId.
func GuestSignIn(c *gin.Context) {
	var req models.GuestRequest
	c.ShouldBindJSON(&req) // body is optional

	// Returning guest with a valid token keeps their identity
	if header := c.GetHeader("Authorization"); header != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if userID, err := utils.ParseToken(tokenString); err == nil {
			var user models.GuestUser
			if err := database.DB.First(&user, userID).Error; err == nil {
				token, err := utils.GenerateToken(user.ID, user.DisplayName)
				if err != nil {
					utils.InternalError(c, "Failed to generate token")
					return
				}
				utils.SuccessResponse(c, http.StatusOK, "Welcome back", AuthResponse{
					Token: token,
					User:  user.ToResponse(),
				})
				return
			}
			// User purged by retention; fall through and mint a new one.
		}
	}

	user := models.GuestUser{
		ID:          uuid.New(),
		DisplayName: strings.TrimSpace(req.DisplayName),
		IsAnonymous: true,
	}
	if user.DisplayName == "" {
		user.DisplayName = "Guest_" + user.ID.String()[:4]
	}

	if err := database.DB.Create(&user).Error; err != nil {
		utils.InternalError(c, "Failed to create guest user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.DisplayName)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Guest session created", AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}
