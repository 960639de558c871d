package api

import (
	"context" // Context for Redis operations

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain"     // Importing domain models
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/middleware" // Context keys
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// currentUser pulls the authenticated user placed in context by the JWT middleware
func currentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(middleware.CurrentUserKey) // Get the acting user from context
	if !exists {
		return domain.User{}, false // No authenticated user on this request
	}
	user, ok := value.(domain.User)
	return user, ok
}

// invalidateDashboard drops the user's cached dashboard after any mutation
// that changes totals or recent activity
func invalidateDashboard(c *gin.Context, userID uint) {
	// The Redis client is injected into context by the protected route group
	if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
		_ = utils.InvalidateDashboard(context.Background(), rdb, userID) // Best-effort invalidation
	}
}
