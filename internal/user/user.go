package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("username or email already registered")
)

// User is an owner of accounts, records, budgets and goals.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
