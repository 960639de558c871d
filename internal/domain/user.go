package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`           // Primary key
	Name         string    `gorm:"not null" json:"name"`           // Display name
	Email        string    `gorm:"unique;not null" json:"email"`   // Unique email, used as the login identity
	Password     string    `gorm:"not null" json:"-"`              // Hashed password, never serialized
	ProfilePhoto *string   `json:"profilePhoto"`                   // Stored photo filename, nil until uploaded
	Currency     string    `gorm:"not null;default:USD" json:"currency"` // Free-text currency label
	Role         string    `gorm:"not null;default:USER" json:"role"`    // Role: USER or ADMIN
	CreatedAt    time.Time `json:"createdAt"`                      // Timestamp of creation
	Incomes      []Income  `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Owned income records
	Expenses     []Expense `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Owned expense records
}
