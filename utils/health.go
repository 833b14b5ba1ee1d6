package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo           bool      `json:"mongo"`
	Redis           *bool     `json:"redis,omitempty"`
	DurableDegraded bool      `json:"durableDegraded"`
	CheckedAt       time.Time `json:"checkedAt"`
}

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// DegradedReporter reports whether durable storage has fallen back to memory.
type DegradedReporter interface {
	Degraded() bool
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every service once and stores the snapshot. A nil
// redisClient means the cache is not configured.
func CheckHealth(ctx context.Context, mongo Pinger, redisClient *redis.Client, durable DegradedReporter) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now().UTC()}
	if mongo != nil {
		status.Mongo = mongo.Ping(ctx)
	}
	if redisClient != nil {
		ok := redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}
	if durable != nil {
		status.DurableDegraded = durable.Degraded()
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, mongo Pinger, redisClient *redis.Client, durable DegradedReporter) {
	CheckHealth(ctx, mongo, redisClient, durable)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, mongo, redisClient, durable)
			}
		}
	}()
}
