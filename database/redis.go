package database

import (
	"context"
	"log"
	"meetsplit-backend/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	opts, err := redis.ParseURL(config.AppConfig.RedisURL)
	if err != nil {
		log.Println("⚠️  Invalid REDIS_URL, running without realtime fanout:", err)
		return
	}

	Redis = redis.NewClient(opts)

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️  Redis not available, running without realtime fanout:", err)
		Redis = nil
		return
	}

	log.Println("✅ Redis connected successfully")
}

// RoomChannel is the pub/sub channel carrying change events for a room.
func RoomChannel(roomID string) string {
	return "room:" + roomID + ":events"
}

// PublishRoomEvent notifies subscribers that something in the room changed
// so they re-fetch and recompute. Fire-and-forget; a missed event only
// delays the next recompute until the client's next poll.
func PublishRoomEvent(roomID string, event string) {
	if Redis == nil {
		return
	}
	if err := Redis.Publish(context.Background(), RoomChannel(roomID), event).Err(); err != nil {
		log.Printf("⚠️  Failed to publish %s event for room %s: %v", event, roomID, err)
	}
}
