package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Building cache keys
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// DashboardTTL is how long a cached dashboard stays valid
const DashboardTTL = 60 * time.Second

// DashboardKey returns the cache key for a user's dashboard
func DashboardKey(userID uint) string {
	return "dashboard:user:" + strconv.Itoa(int(userID))
}

// FetchJSON retrieves a value from Redis and unmarshals it into dest
func FetchJSON(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// StoreJSON sets a value in Redis with a specified TTL
func StoreJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// InvalidateDashboard drops the cached dashboard for a user after a mutation
func InvalidateDashboard(ctx context.Context, rdb *redis.Client, userID uint) error {
	return rdb.Del(ctx, DashboardKey(userID)).Err() // Delete the dashboard key
}
