package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"society-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on
// failure the client stays nil and every helper degrades to a miss.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// GetDashboardStats returns the cached stats JSON, if present.
func GetDashboardStats(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, dashboardStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetDashboardStats stores the stats JSON with a short TTL.
func SetDashboardStats(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, dashboardStatsKey, data, dashboardStatsTTL)
}

// InvalidateDashboardStats drops the cached stats after a mutation.
func InvalidateDashboardStats(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, dashboardStatsKey)
}
