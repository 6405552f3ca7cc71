package services

import (
	"log"
	"time"

	"meetsplit-backend/config"
	"meetsplit-backend/database"
	"meetsplit-backend/models"
)

// StartCleanupWorker runs the retention sweep once at startup and then every
// 24 hours. Rooms older than the retention window disappear along with all
// of their rows, and guest users with no remaining memberships go with them.
func StartCleanupWorker() {
	go func() {
		sweepExpiredRooms()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			sweepExpiredRooms()
		}
	}()
}

func sweepExpiredRooms() {
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.RetentionDays)

	var rooms []models.Room
	if err := database.DB.Where("created_at < ?", cutoff).Find(&rooms).Error; err != nil {
		log.Printf("❌ Cleanup query error: %v", err)
		return
	}

	if len(rooms) == 0 {
		return
	}

	for _, room := range rooms {
		if err := deleteRoomCascade(room.ID); err != nil {
			log.Printf("❌ Cleanup failed for room %s: %v", room.ID, err)
		} else {
			log.Printf("✅ Cleaned up expired room %s (%s)", room.ID, room.Name)
		}
	}

	sweepOrphanedGuests()
}

func deleteRoomCascade(roomID string) error {
	tx := database.DB.Begin()

	tables := []interface{}{
		&models.Availability{},
		&models.ExpenseParticipant{},
		&models.Expense{},
		&models.RoomPayment{},
		&models.Activity{},
		&models.RoomMember{},
	}
	for _, model := range tables {
		if err := tx.Where("room_id = ?", roomID).Delete(model).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(&models.Room{}, "id = ?", roomID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// sweepOrphanedGuests removes anonymous users that no longer belong to any
// room. Named-profile users are kept so a returning device can reclaim them.
func sweepOrphanedGuests() {
	result := database.DB.
		Where("is_anonymous = ?", true).
		Where("id NOT IN (?)", database.DB.Model(&models.RoomMember{}).Select("user_id")).
		Delete(&models.GuestUser{})

	if result.Error != nil {
		log.Printf("❌ Guest cleanup error: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("✅ Removed %d orphaned guest users", result.RowsAffected)
	}
}
