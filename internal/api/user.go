package api

import (
	"bytes"         // CSV buffer
	"context"       // Context for Redis operations
	"encoding/csv"  // CSV export
	"net/http"      // HTTP status codes
	"path/filepath" // Upload paths
	"sort"          // Sorting merged transactions
	"strconv"       // Amount formatting for CSV

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/config" // Upload directory
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain" // Importing domain models
	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`        // New display name
	Email string `json:"email" binding:"required,email"` // New email
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"` // Current password for verification
	NewPassword string `json:"newPassword" binding:"required"` // Replacement password
}

// CurrencyRequest represents a currency update request
type CurrencyRequest struct {
	Currency string `json:"currency" binding:"required"` // Free-text currency label
}

// DashboardResponse combines totals and recent activity across both kinds
type DashboardResponse struct {
	TotalIncome        float64              `json:"totalIncome"`        // Sum of all incomes
	TotalExpense       float64              `json:"totalExpense"`       // Sum of all expenses
	Balance            float64              `json:"balance"`            // Income minus expense, may be negative
	RecentTransactions []domain.Transaction `json:"recentTransactions"` // 5 most recent records across both kinds
}

// GetProfileHandler returns the authenticated user's profile
func GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user) // Password is never serialized
	}
}

// UpdateProfileHandler overwrites the user's name and email
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// A changed email must not belong to another user
		if req.Email != user.Email {
			var count int64
			if err := db.Model(&domain.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
				return
			}
		}
		// Overwrite name and email
		if err := db.Model(&user).Updates(map[string]any{"name": req.Name, "email": req.Email}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		user.Name = req.Name
		user.Email = req.Email
		c.JSON(http.StatusOK, user) // Return the updated profile
	}
}

// UploadPhotoHandler replaces the user's profile photo. The old file is
// removed best-effort only after the new upload passes validation.
func UploadPhotoHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		file, err := c.FormFile("file") // Multipart file field
		if err != nil {
			// Missing file part
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrEmptyFile.Error()})
			return
		}
		// Validate size and content type before anything touches disk or the
		// stored reference
		if err := utils.ValidatePhoto(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Delete the previous photo, best-effort
		if user.ProfilePhoto != nil {
			utils.DeletePhoto(cfg.UploadDir, *user.ProfilePhoto)
		}
		filename := utils.PhotoFilename(file.Filename) // Unique name, original extension
		if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, filename)); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Owning user
				"file":    filename,    // Target filename
				"error":   err.Error(), // Error message
			}).Error("Failed to store photo") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
		// Record the new filename on the user
		if err := db.Model(&user).Update("profile_photo", filename).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
		user.ProfilePhoto = &filename
		c.JSON(http.StatusOK, user) // Return the updated profile
	}
}

// ChangePasswordHandler verifies the old password and stores a new hash
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Verify the old password against the stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Store the new hash
		if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// UpdateCurrencyHandler overwrites the currency label; the code itself is not
// validated, it is a free-text label
func UpdateCurrencyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CurrencyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := db.Model(&user).Update("currency", req.Currency).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update currency"})
			return
		}
		user.Currency = req.Currency
		c.JSON(http.StatusOK, user) // Return the updated profile
	}
}

// DashboardHandler returns totals, balance, and the 5 most recent transactions
// across both kinds. Responses are cached in Redis and invalidated on every
// income/expense mutation.
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()            // Context for Redis operations
		cacheKey := utils.DashboardKey(user.ID) // Per-user cache key
		var cached DashboardResponse
		found, err := utils.FetchJSON(ctx, rdb, cacheKey, &cached) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return the cached dashboard
			return
		}
		totalIncome, err := totalIncomes(db, user.ID) // Sum of incomes, zero when none
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		totalExpense, err := totalExpenses(db, user.ID) // Sum of expenses, zero when none
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		// Top 5 of each kind, newest first
		var recentIncomes []domain.Income
		if err := db.Where("user_id = ?", user.ID).Order("date desc").Limit(5).Find(&recentIncomes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		var recentExpenses []domain.Expense
		if err := db.Where("user_id = ?", user.ID).Order("date desc").Limit(5).Find(&recentExpenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
			return
		}
		// Merge incomes then expenses, stable-sort by date, keep the top 5.
		// Equal-date ordering follows the concatenation order and is not a
		// guarantee of the endpoint.
		transactions := make([]domain.Transaction, 0, len(recentIncomes)+len(recentExpenses))
		for _, income := range recentIncomes {
			transactions = append(transactions, domain.Transaction{
				ID:          income.ID,       // Underlying record ID
				Type:        "income",        // Discriminant
				Amount:      income.Amount,   // Amount
				Category:    income.Category, // Category
				Description: income.Source,   // Source doubles as description
				Date:        income.Date,     // Calendar date
				Note:        income.Note,     // Optional note
			})
		}
		for _, expense := range recentExpenses {
			transactions = append(transactions, domain.Transaction{
				ID:          expense.ID,          // Underlying record ID
				Type:        "expense",           // Discriminant
				Amount:      expense.Amount,      // Amount
				Category:    expense.Category,    // Category
				Description: expense.Description, // Description
				Date:        expense.Date,        // Calendar date
				Note:        expense.Note,        // Optional note
			})
		}
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Date.After(transactions[j].Date) // Newest first
		})
		if len(transactions) > 5 {
			transactions = transactions[:5] // Keep only the 5 most recent
		}
		resp := DashboardResponse{
			TotalIncome:        totalIncome,                // Sum of incomes
			TotalExpense:       totalExpense,               // Sum of expenses
			Balance:            totalIncome - totalExpense, // May be negative
			RecentTransactions: transactions,               // Merged recent activity
		}
		// Cache the dashboard for future requests
		_ = utils.StoreJSON(ctx, rdb, cacheKey, resp, utils.DashboardTTL)
		c.JSON(http.StatusOK, resp) // Return the dashboard
	}
}

// ExportHandler produces a CSV dump of all the user's transactions: incomes
// first, then expenses, each newest-first with no combined re-sort
func ExportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var incomes []domain.Income // All incomes, newest first
		if err := db.Where("user_id = ?", user.ID).Order("date desc").Find(&incomes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
			return
		}
		var expenses []domain.Expense // All expenses, newest first
		if err := db.Where("user_id = ?", user.ID).Order("date desc").Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
			return
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"Date", "Type", "Category", "Description", "Amount", "Note"}) // Header row
		for _, income := range incomes {
			_ = w.Write([]string{
				income.Date.String(), // Calendar date
				"Income",             // Record kind
				income.Category,      // Category
				income.Source,        // Source doubles as description
				strconv.FormatFloat(income.Amount, 'f', -1, 64), // Amount
				income.Note, // Optional note
			})
		}
		for _, expense := range expenses {
			_ = w.Write([]string{
				expense.Date.String(), // Calendar date
				"Expense",             // Record kind
				expense.Category,      // Category
				expense.Description,   // Description
				strconv.FormatFloat(expense.Amount, 'f', -1, 64), // Amount
				expense.Note, // Optional note
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			// A generation failure degrades to a generic server error, never a partial file
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes()) // Return the full CSV
	}
}

// DeleteAccountHandler removes the user's photo (best-effort), then the user
// row and every owned record in one transaction
func DeleteAccountHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Delete the stored photo first; a failure here never blocks account deletion
		if user.ProfilePhoto != nil {
			utils.DeletePhoto(cfg.UploadDir, *user.ProfilePhoto)
		}
		// Cascade explicitly: owned records go in the same transaction as the user row
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", user.ID).Delete(&domain.Expense{}).Error; err != nil {
				return err // Return error to rollback
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&domain.Income{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&user).Error // Finally the user row itself
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User being deleted
				"error":   err.Error(), // Error message
			}).Error("Failed to delete account") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		invalidateDashboard(c, user.ID) // Drop the cached dashboard for good
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
