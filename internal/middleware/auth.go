package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain" // Importing domain models
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CurrentUserKey is the gin context key holding the authenticated user
const CurrentUserKey = "currentUser"

// TokenCookieName is the cookie carrying the token for browser clients
const TokenCookieName = "token"

// JWTAuthMiddleware validates the bearer token (Authorization header or the
// session cookie) and resolves the token's email to a live user row. The
// resolved user becomes the acting identity for the rest of the request.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := "" // Token extracted from the request
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ") // Prefer the Authorization header
		} else if cookie, err := c.Cookie(TokenCookieName); err == nil {
			tokenStr = cookie // Fall back to the session cookie
		}
		// Check that a token was presented at all
		if tokenStr == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		var user domain.User // Resolve the subject to a user row on every request
		if err := db.Where("email = ?", claims.Email).First(&user).Error; err != nil {
			// A token whose subject no longer exists is treated the same as an invalid one
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(CurrentUserKey, user) // Store the acting user in context
		c.Next()                    // Proceed to the next handler
	}
}
