// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"happyhotel/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient holds short-lived shared counters, such as the per-IP rate
// limit windows.
var CacheClient *redis.Client

// InitCache connects CacheClient.
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

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
