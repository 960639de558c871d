package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// IncomeRequest represents a create/update income request. Same shape as an
// expense except the text field is the income's source.
type IncomeRequest struct {
	Amount   float64     `json:"amount" binding:"required,gt=0"` // Amount must be positive
	Category string      `json:"category" binding:"required"`    // Category must be provided
	Source   string      `json:"source" binding:"required"`      // Source must be provided
	Date     domain.Date `json:"date" binding:"required"`        // Date must be provided
	Note     string      `json:"note" binding:"max=500"`         // Optional note, bounded length
}

// fetchIncome loads an income only if it belongs to the given user; missing
// and not-owned are indistinguishable to the caller
func fetchIncome(db *gorm.DB, userID uint, id int) (domain.Income, error) {
	var income domain.Income
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&income).Error
	return income, err
}

// totalIncomes sums all income amounts for a user, zero when there are none
func totalIncomes(db *gorm.DB, userID uint) (float64, error) {
	var total float64
	err := db.Model(&domain.Income{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CreateIncomeHandler records a new income owned by the authenticated user
func CreateIncomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req IncomeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		income := domain.Income{
			Amount:   req.Amount,   // Positive amount
			Category: req.Category, // Category
			Source:   req.Source,   // Source
			Date:     req.Date,     // Calendar date
			Note:     req.Note,     // Optional note
			UserID:   user.ID,      // Owned by the acting user
		}
		// Persist the new income
		if err := db.Create(&income).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Owning user
				"error":   err.Error(), // Error message
			}).Error("Failed to create income") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create income"})
			return
		}
		invalidateDashboard(c, user.ID) // Totals changed
		c.JSON(http.StatusOK, income)   // Return the stored record
	}
}

// ListIncomesHandler returns the user's incomes with optional date-range and
// category filters, newest first
func ListIncomesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		startStr := c.Query("startDate") // Optional range start
		endStr := c.Query("endDate")     // Optional range end
		category := c.Query("category")  // Optional category
		var start, end domain.Date
		var err error
		if startStr != "" {
			if start, err = domain.ParseDate(startStr); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
				return
			}
		}
		if endStr != "" {
			if end, err = domain.ParseDate(endStr); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
				return
			}
		}
		query := db.Where("user_id = ?", user.ID) // Always scoped to the owner
		rangeGiven := startStr != "" && endStr != ""
		// Filter precedence: range and category, then range, then category, then all
		switch {
		case rangeGiven && category != "":
			query = query.Where("date BETWEEN ? AND ?", start, end).Where("category = ?", category)
		case rangeGiven:
			query = query.Where("date BETWEEN ? AND ?", start, end) // Inclusive on both ends
		case category != "":
			query = query.Where("category = ?", category)
		}
		incomes := make([]domain.Income, 0) // Empty list, never null
		if err := query.Order("date desc").Find(&incomes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incomes"})
			return
		}
		c.JSON(http.StatusOK, incomes) // Return the filtered list
	}
}

// GetIncomeHandler returns a single income owned by the authenticated user
func GetIncomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		income, err := fetchIncome(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		c.JSON(http.StatusOK, income) // Return the record
	}
}

// UpdateIncomeHandler overwrites all mutable fields of an owned income
func UpdateIncomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		income, err := fetchIncome(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		var req IncomeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Overwrite the mutable fields; the owner never changes
		income.Amount = req.Amount
		income.Category = req.Category
		income.Source = req.Source
		income.Date = req.Date
		income.Note = req.Note
		if err := db.Save(&income).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   user.ID,     // Owning user
				"income_id": income.ID,   // Record being updated
				"error":     err.Error(), // Error message
			}).Error("Failed to update income") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update income"})
			return
		}
		invalidateDashboard(c, user.ID) // Totals may have changed
		c.JSON(http.StatusOK, income)   // Return the updated record
	}
}

// DeleteIncomeHandler permanently removes an owned income
func DeleteIncomeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		income, err := fetchIncome(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
			return
		}
		if err := db.Delete(&income).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete income"})
			return
		}
		invalidateDashboard(c, user.ID) // Totals changed
		c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
	}
}
