package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID           string    `gorm:"primary_key" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100)" json:"last_name"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// CreateUserRequest represents the data needed to create a user
type CreateUserRequest struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// UpdateUserRequest represents a user update; zero-value fields are ignored.
type UpdateUserRequest struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
}
