package api

import (
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/config"     // Custom package for configuration
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter assembles the full HTTP surface of the application
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Auth routes (no token required)
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(db, cfg.JWTSecret))       // Login endpoint
	authGroup.POST("/logout", LogoutHandler())                      // Logout endpoint (clears the cookie)

	// Everything else requires a valid token
	protected := r.Group("/api")
	// Protect routes with JWT middleware and inject Redis client into context
	protected.Use(middleware.JWTAuthMiddleware(db, cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", rdb)
		c.Next()
	})

	// Expense routes
	expenseGroup := protected.Group("/expenses")
	expenseGroup.POST("", CreateExpenseHandler(db))       // Create expense endpoint
	expenseGroup.GET("", ListExpensesHandler(db))         // Filtered list endpoint
	expenseGroup.GET("/:id", GetExpenseHandler(db))       // Single expense endpoint
	expenseGroup.PUT("/:id", UpdateExpenseHandler(db))    // Update expense endpoint
	expenseGroup.DELETE("/:id", DeleteExpenseHandler(db)) // Delete expense endpoint

	// Income routes (mirror of expenses)
	incomeGroup := protected.Group("/incomes")
	incomeGroup.POST("", CreateIncomeHandler(db))       // Create income endpoint
	incomeGroup.GET("", ListIncomesHandler(db))         // Filtered list endpoint
	incomeGroup.GET("/:id", GetIncomeHandler(db))       // Single income endpoint
	incomeGroup.PUT("/:id", UpdateIncomeHandler(db))    // Update income endpoint
	incomeGroup.DELETE("/:id", DeleteIncomeHandler(db)) // Delete income endpoint

	// User routes: profile, photo, password, currency, dashboard, export, account
	userGroup := protected.Group("/user")
	userGroup.GET("/profile", GetProfileHandler())                 // Current profile endpoint
	userGroup.PUT("/profile", UpdateProfileHandler(db))            // Profile update endpoint
	userGroup.POST("/profile/photo", UploadPhotoHandler(db, cfg))  // Profile photo upload endpoint
	userGroup.PUT("/password", ChangePasswordHandler(db))          // Password change endpoint
	userGroup.PUT("/currency", UpdateCurrencyHandler(db))          // Currency update endpoint
	userGroup.GET("/dashboard", DashboardHandler(db, rdb))         // Dashboard summary endpoint
	userGroup.GET("/export", ExportHandler(db))                    // CSV export endpoint
	userGroup.DELETE("/account", DeleteAccountHandler(db, cfg))    // Account deletion endpoint

	return r
}
