package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/auth"
	"github.com/Dev-MiMi/expensetracker/internal/user"
)

type memoryStorage struct {
	users map[uuid.UUID]*user.User
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{users: make(map[uuid.UUID]*user.User)}
}

func (m *memoryStorage) CreateUser(ctx context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrExists
		}
	}

	u.ID = uuid.New()
	u.IsActive = true
	m.users[u.ID] = u

	return nil
}

func (m *memoryStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}

	return nil, user.ErrNotFound
}

func (m *memoryStorage) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (m *memoryStorage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}

	return nil, user.ErrNotFound
}

func TestPasswordAuthenticator_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	authn := auth.NewPasswordAuthenticator(newMemoryStorage())

	registered, err := authn.Register(ctx, "frank", "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", registered.PasswordHash)

	byUsername, err := authn.Authenticate(ctx, "frank", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byUsername.ID)

	byEmail, err := authn.Authenticate(ctx, "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byEmail.ID)
}

func TestPasswordAuthenticator_RejectsWeakPassword(t *testing.T) {
	authn := auth.NewPasswordAuthenticator(newMemoryStorage())

	_, err := authn.Register(context.Background(), "frank", "frank@example.com", "short")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestPasswordAuthenticator_RejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	authn := auth.NewPasswordAuthenticator(newMemoryStorage())

	_, err := authn.Register(ctx, "frank", "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = authn.Register(ctx, "frank", "other@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, user.ErrExists)
}

func TestPasswordAuthenticator_RejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	authn := auth.NewPasswordAuthenticator(newMemoryStorage())

	_, err := authn.Register(ctx, "frank", "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = authn.Authenticate(ctx, "frank", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = authn.Authenticate(ctx, "nobody", "hunter2hunter2")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestPasswordAuthenticator_RejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	authn := auth.NewPasswordAuthenticator(storage)

	registered, err := authn.Register(ctx, "frank", "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)

	storage.users[registered.ID].IsActive = false

	_, err = authn.Authenticate(ctx, "frank", "hunter2hunter2")
	assert.ErrorIs(t, err, auth.ErrInactiveUser)

	_, err = authn.Lookup(ctx, registered.ID)
	assert.ErrorIs(t, err, auth.ErrInactiveUser)
}
