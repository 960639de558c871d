package domain

import "time"

// Expense Model
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Amount      float64   `gorm:"not null" json:"amount"`        // Positive amount
	Category    string    `gorm:"not null" json:"category"`      // Free-text category
	Description string    `gorm:"not null" json:"description"`   // Free-text description
	Date        Date      `gorm:"type:date;not null" json:"date"` // Calendar date of the expense
	Note        string    `gorm:"size:500" json:"note"`          // Optional note, bounded length
	CreatedAt   time.Time `json:"createdAt"`                     // Timestamp of creation
	UserID      uint      `gorm:"not null;index" json:"-"`       // Owning user, immutable after creation
}
