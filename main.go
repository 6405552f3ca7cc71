package main

import (
	"log"
	"meetsplit-backend/config"
	"meetsplit-backend/database"
	"meetsplit-backend/handlers"
	"meetsplit-backend/middleware"
	"meetsplit-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Push notifications (optional, no-op without Firebase credentials)
	services.InitNotificationService()

	// Retention sweep for expired rooms
	services.StartCleanupWorker()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/guest", handlers.GuestSignIn)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)

		// Rooms
		api.POST("/rooms", handlers.CreateRoom)
		api.GET("/rooms/:id", handlers.GetRoom)
		api.POST("/rooms/:id/join", handlers.JoinRoom)
		api.DELETE("/rooms/:id/members/:uid", handlers.RemoveMember)
		api.PUT("/rooms/:id/lock", handlers.LockRoom)
		api.PUT("/rooms/:id/announcement", handlers.UpdateAnnouncement)
		api.GET("/rooms/:id/activity", handlers.GetRoomActivity)

		// Availability
		api.PUT("/rooms/:id/availability", handlers.UpdateAvailability)
		api.GET("/rooms/:id/availability", handlers.GetAvailability)
		api.GET("/rooms/:id/best-dates", handlers.GetBestDates)

		// Expenses
		api.POST("/rooms/:id/expenses", handlers.CreateExpense)
		api.GET("/rooms/:id/expenses", handlers.GetRoomExpenses)
		api.GET("/expenses/:id", handlers.GetExpense)

		// Balances & payments
		api.GET("/rooms/:id/balances", handlers.GetRoomBalances)
		api.POST("/rooms/:id/payments/preview", handlers.PreviewPayments)
		api.PUT("/rooms/:id/payments", handlers.FinalizePayments)

		// Summary
		api.GET("/rooms/:id/summary", handlers.GetRoomSummary)
		api.POST("/rooms/:id/summary/share", handlers.ShareRoomSummary)

		// Live events
		api.GET("/rooms/:id/events", handlers.StreamRoomEvents)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	log.Printf("🚀 Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
