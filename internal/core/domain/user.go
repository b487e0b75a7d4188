package domain

import (
	"errors"
	"time"
)

// DefaultLeaveBalance is the yearly leave allowance granted at signup.
const DefaultLeaveBalance = 6

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an account holder. The password hash never leaves the backend.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	IsVerified      bool      `json:"is_verified"`
	ProfilePic      string    `json:"profile_pic,omitempty"`
	LeavesRemaining int       `json:"leaves_remaining"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
