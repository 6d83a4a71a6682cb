package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingFields      = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrUnauthorized       = errors.New("unauthorized")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	Active  bool
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
