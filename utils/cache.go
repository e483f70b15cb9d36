// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"vetchat/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient holds volatile chat state such as in-progress booking flows.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client using REDIS_CACHE_DB.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the cache client, connecting on first use.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
