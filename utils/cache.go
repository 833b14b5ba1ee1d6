// File: utils/cache.go
package utils

import (
	"context"
	"sync"
	"time"

	"lawyerconnect/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client. It stays nil when Redis is
	// not configured or unreachable at startup.
	CacheClient *redis.Client
	cacheOnce   sync.Once
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
// Redis is optional: a failed ping leaves CacheClient nil and callers run uncached.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("Redis not configured, caching disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Failed to connect to Redis (Cache), caching disabled", zap.Error(err))
		_ = client.Close()
		return
	}
	CacheClient = client
}

// GetCacheClient returns the generic cache client, or nil when caching is off.
func GetCacheClient() *redis.Client {
	cacheOnce.Do(InitCache)
	return CacheClient
}
