package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"unique;not null"`
	FirstName string `json:"firstName" gorm:"column:first_name"`
	LastName  string `json:"lastName" gorm:"column:last_name"`
	Role      string `json:"role"`
	Password  string `json:"-" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// FullName returns "First Last", falling back to the username when both
// name fields are empty.
func (u User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}
