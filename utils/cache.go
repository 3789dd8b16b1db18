// File: utils/cache.go
package utils

import (
	"citaflow/config"
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCacheClient is the Redis client backing the shared slot cache when the
// redis backend is enabled.
var SlotCacheClient *redis.Client

// InitSlotCacheClient initializes the Redis client for the shared slot cache.
func InitSlotCacheClient() {
	SlotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SlotCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Slot Cache): %v", err)
	}
}

// GetSlotCacheClient returns the Redis client for the shared slot cache.
func GetSlotCacheClient() *redis.Client {
	if SlotCacheClient == nil {
		InitSlotCacheClient()
	}
	return SlotCacheClient
}
