package handlers

import (
	"io"

	"meetsplit-backend/database"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/rooms/:id/events
//
// Server-sent events stream of room activity. Every mutation publishes a
// JSON payload on the room's redis channel and every open stream relays it.
func StreamRoomEvents(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	if database.Redis == nil {
		utils.InternalError(c, "Live events are not available")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sub := database.Redis.Subscribe(c.Request.Context(), database.RoomChannel(roomID))
	defer sub.Close()

	ch := sub.Channel()

	c.Stream(func(w io.Writer) bool {
		msg, ok := <-ch
		if !ok {
			return false
		}
		c.SSEvent("message", msg.Payload)
		return true
	})
}
