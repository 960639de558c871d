package api

import (
	"net/http" // HTTP status codes

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain"     // Importing domain models
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/middleware" // Cookie name
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request and Response structs
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`            // Display name must be provided
	Email           string `json:"email" binding:"required,email"`     // Email must be provided and well-formed
	Password        string `json:"password" binding:"required"`        // Password must be provided
	ConfirmPassword string `json:"confirmPassword" binding:"required"` // Confirmation must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication, echoing the public profile fields
type AuthResponse struct {
	Token        string  `json:"token"`        // JWT token
	Type         string  `json:"type"`         // Always "Bearer"
	ID           uint    `json:"id"`           // User ID
	Name         string  `json:"name"`         // Display name
	Email        string  `json:"email"`        // Email
	Currency     string  `json:"currency"`     // Currency label
	ProfilePhoto *string `json:"profilePhoto"` // Stored photo filename, nil if none
}

// tokenCookieAge matches the token lifetime (24 hours, in seconds)
const tokenCookieAge = 24 * 60 * 60

// setTokenCookie stores the token in an http-only session cookie
func setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookieName, token, tokenCookieAge, "/", "", false, true)
}

// authResponse builds the shared register/login response body
func authResponse(token string, user domain.User) AuthResponse {
	return AuthResponse{
		Token:        token,             // JWT token
		Type:         "Bearer",          // Token type
		ID:           user.ID,           // User ID
		Name:         user.Name,         // Display name
		Email:        user.Email,        // Email
		Currency:     user.Currency,     // Currency label
		ProfilePhoto: user.ProfilePhoto, // Stored photo filename
	}
}

// RegisterHandler creates a new user account and signs it in
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The two password inputs must agree
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		// Check if the email is already taken
		var count int64
		if err := db.Model(&domain.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}
		if count > 0 {
			// Duplicate email, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		// Hash the password and create the user with default currency and role
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Name:     req.Name,     // Display name
			Email:    req.Email,    // Unique email
			Password: string(hash), // Hashed password
			Currency: "USD",        // Default currency
			Role:     "USER",       // Default role
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// A racing duplicate insert lands here via the unique constraint
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		// Issue a token for the fresh account
		token, err := utils.GenerateJWT(user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setTokenCookie(c, token) // Set the session cookie
		// Return the token plus public profile fields
		c.JSON(http.StatusOK, authResponse(token, user))
	}
}

// LoginHandler authenticates a user and returns a fresh token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// Unknown email, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setTokenCookie(c, token) // Set the session cookie
		// Return the token plus public profile fields
		c.JSON(http.StatusOK, authResponse(token, user))
	}
}

// LogoutHandler clears the session cookie. There is no server-side revocation
// list; the client is expected to discard the token.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Expire the cookie immediately
		c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
