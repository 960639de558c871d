package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// ExpenseRequest represents a create/update expense request
type ExpenseRequest struct {
	Amount      float64     `json:"amount" binding:"required,gt=0"`  // Amount must be positive
	Category    string      `json:"category" binding:"required"`     // Category must be provided
	Description string      `json:"description" binding:"required"`  // Description must be provided
	Date        domain.Date `json:"date" binding:"required"`         // Date must be provided
	Note        string      `json:"note" binding:"max=500"`          // Optional note, bounded length
}

// fetchExpense loads an expense only if it belongs to the given user. A record
// owned by someone else is reported exactly like a missing one, so existence
// never leaks across users.
func fetchExpense(db *gorm.DB, userID uint, id int) (domain.Expense, error) {
	var expense domain.Expense
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error
	return expense, err
}

// totalExpenses sums all expense amounts for a user, zero when there are none
func totalExpenses(db *gorm.DB, userID uint) (float64, error) {
	var total float64
	err := db.Model(&domain.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CreateExpenseHandler records a new expense owned by the authenticated user
func CreateExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		expense := domain.Expense{
			Amount:      req.Amount,      // Positive amount
			Category:    req.Category,    // Category
			Description: req.Description, // Description
			Date:        req.Date,        // Calendar date
			Note:        req.Note,        // Optional note
			UserID:      user.ID,         // Owned by the acting user
		}
		// Persist the new expense
		if err := db.Create(&expense).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Owning user
				"error":   err.Error(), // Error message
			}).Error("Failed to create expense") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
			return
		}
		invalidateDashboard(c, user.ID)  // Totals changed
		c.JSON(http.StatusOK, expense)   // Return the stored record
	}
}

// ListExpensesHandler returns the user's expenses with optional date-range
// and category filters, newest first
func ListExpensesHandler(db *gorm.DB) gin.HandlerFunc {
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
		// Any supplied date must be well-formed even if the other bound is missing
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
		expenses := make([]domain.Expense, 0) // Empty list, never null
		if err := query.Order("date desc").Find(&expenses).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		c.JSON(http.StatusOK, expenses) // Return the filtered list
	}
}

// GetExpenseHandler returns a single expense owned by the authenticated user
func GetExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// A malformed id can never match a record
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		expense, err := fetchExpense(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			// Missing and not-owned are reported identically
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		c.JSON(http.StatusOK, expense) // Return the record
	}
}

// UpdateExpenseHandler overwrites all mutable fields of an owned expense
func UpdateExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		expense, err := fetchExpense(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Overwrite the mutable fields; the owner never changes
		expense.Amount = req.Amount
		expense.Category = req.Category
		expense.Description = req.Description
		expense.Date = req.Date
		expense.Note = req.Note
		if err := db.Save(&expense).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,     // Owning user
				"expense_id": expense.ID,  // Record being updated
				"error":      err.Error(), // Error message
			}).Error("Failed to update expense") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
			return
		}
		invalidateDashboard(c, user.ID) // Totals may have changed
		c.JSON(http.StatusOK, expense)  // Return the updated record
	}
}

// DeleteExpenseHandler permanently removes an owned expense
func DeleteExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get the acting user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		expense, err := fetchExpense(db, user.ID, id) // Ownership-checked lookup
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		if err := db.Delete(&expense).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		invalidateDashboard(c, user.ID) // Totals changed
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
	}
}
