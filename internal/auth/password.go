package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dev-MiMi/expensetracker/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInactiveUser       = errors.New("user account is not active")
)

// UserStorage is the persistence contract the authenticator depends on.
type UserStorage interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}

// PasswordAuthenticator implements username/email + password authentication
// with bcrypt-hashed credentials.
type PasswordAuthenticator struct {
	storage UserStorage
}

func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// Register creates a new user with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := a.storage.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate verifies the identifier (username or email) and password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, identifier, password string) (*user.User, error) {
	u, err := a.storage.GetUserByUsername(ctx, identifier)
	if errors.Is(err, user.ErrNotFound) {
		u, err = a.storage.GetUserByEmail(ctx, identifier)
	}

	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	return u, nil
}

// Lookup fetches a user by ID, for refresh-token renewal.
func (a *PasswordAuthenticator) Lookup(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := a.storage.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	return u, nil
}
