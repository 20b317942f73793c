package matching_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/matching"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type mockRepo struct {
	found   string
	learned map[string]string
}

func (m *mockRepo) FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (string, error) {
	return m.found, nil
}

func (m *mockRepo) CreateMapping(ctx context.Context, ownerID uuid.UUID, rawPattern, category string) error {
	if m.learned == nil {
		m.learned = make(map[string]string)
	}

	m.learned[rawPattern] = category

	return nil
}

func TestService_Suggest(t *testing.T) {
	svc := matching.NewService(&mockRepo{found: "Groceries"})

	got, err := svc.Suggest(context.Background(), uuid.New(), "SUPERMARKET LISBOA")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got)
}

func TestService_Learn(t *testing.T) {
	repo := &mockRepo{}
	svc := matching.NewService(repo)

	require.NoError(t, svc.Learn(context.Background(), uuid.New(), "SUPERMARKET", "Groceries"))
	assert.Equal(t, "Groceries", repo.learned["SUPERMARKET"])
}

func TestService_Learn_Rejections(t *testing.T) {
	svc := matching.NewService(&mockRepo{})

	err := svc.Learn(context.Background(), uuid.New(), "", "Groceries")

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "raw_pattern", vErr.Field)

	err = svc.Learn(context.Background(), uuid.New(), "SUPERMARKET", "Yachts")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}
