// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"clearcare/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient is the dedicated client for session context storage.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client backing session context
// storage. An unreachable Redis leaves the client nil so callers can fall
// back to in-memory sessions.
func InitSessionCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis (Sessions): %v", err)
		return
	}
	SessionCacheClient = client
}

// GetSessionCacheClient returns the Redis client for session context
// storage, nil when Redis was unreachable at startup.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
