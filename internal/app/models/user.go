package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             string    `json:"id" db:"id"`                           // UUID primary key
	FirstName      string    `json:"first_name" db:"first_name"`           // User's first name
	LastName       string    `json:"last_name" db:"last_name"`             // User's last name
	Password       string    `json:"-" db:"password"`                      // Bcrypt hash, excluded from JSON
	Email          string    `json:"email" db:"email"`                     // Login key, unique
	AccountCreated time.Time `json:"account_created" db:"account_created"` // Timestamp when the account was created
	AccountUpdated time.Time `json:"account_updated" db:"account_updated"` // Timestamp when the account was last updated
}
