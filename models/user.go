package models

import (
	"time"
)

const (
	// UserStatusLocked cannot log in
	UserStatusLocked = "locked"
	// UserStatusActive can log in
	UserStatusActive = "active"
)

// User account. Owns expenses; the password column only ever holds a bcrypt hash.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:100"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false;index"`
	Status    string    `json:"status" gorm:"size:20;default:active;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (User) TableName() string {
	return "users"
}

// CanLogin reports whether the account is unlocked
func (u User) CanLogin() bool {
	return u.Status == "" || u.Status == UserStatusActive
}
