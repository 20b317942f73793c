package goal_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/goal"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type mockRepo struct {
	goals map[uuid.UUID]*goal.Goal
}

func newMockRepo() *mockRepo {
	return &mockRepo{goals: make(map[uuid.UUID]*goal.Goal)}
}

func (m *mockRepo) CreateGoal(ctx context.Context, g *goal.Goal) error {
	g.ID = uuid.New()
	m.goals[g.ID] = g

	return nil
}

func (m *mockRepo) GetGoal(ctx context.Context, ownerID, id uuid.UUID) (*goal.Goal, error) {
	g, ok := m.goals[id]
	if !ok || g.OwnerID != ownerID {
		return nil, goal.ErrNotFound
	}

	copied := *g

	return &copied, nil
}

func (m *mockRepo) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error) {
	var out []*goal.Goal

	for _, g := range m.goals {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}

	return out, nil
}

func (m *mockRepo) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	m.goals[g.ID] = g
	return nil
}

func (m *mockRepo) DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error {
	delete(m.goals, id)
	return nil
}

func TestProgress(t *testing.T) {
	type testCase struct {
		name   string
		target string
		saved  string
		want   string
	}

	tests := []testCase{
		{name: "Half", target: "1000.00", saved: "500.00", want: "50"},
		{name: "ZeroTarget", target: "0.00", saved: "500.00", want: "0"},
		{name: "Overachieved", target: "100.00", saved: "150.00", want: "150"},
		{name: "Rounded", target: "300.00", saved: "100.00", want: "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &goal.Goal{
				TargetAmount: decimal.RequireFromString(tt.target),
				SavedAmount:  decimal.RequireFromString(tt.saved),
			}

			assert.True(t, g.Progress().Equal(decimal.RequireFromString(tt.want)),
				"progress: %s", g.Progress())
		})
	}
}

func TestService_Create_CustomName(t *testing.T) {
	svc := goal.NewService(newMockRepo())
	ownerID := uuid.New()

	g, err := svc.Create(context.Background(), ownerID, goal.Params{
		Name:         "other",
		CustomName:   "Sailing boat",
		TargetAmount: decimal.RequireFromString("5000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sailing boat", g.Name)
}

func TestService_Create_PresetName(t *testing.T) {
	svc := goal.NewService(newMockRepo())

	g, err := svc.Create(context.Background(), uuid.New(), goal.Params{
		Name:         "emergency_fund",
		TargetAmount: decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "emergency_fund", g.Name)
}

func TestService_Create_UnknownLabel(t *testing.T) {
	svc := goal.NewService(newMockRepo())

	_, err := svc.Create(context.Background(), uuid.New(), goal.Params{
		Name: "time_machine",
	})

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "goal_name", vErr.Field)
}

func TestService_Update_OwnerScoped(t *testing.T) {
	repo := newMockRepo()
	svc := goal.NewService(repo)
	ownerID := uuid.New()

	g, err := svc.Create(context.Background(), ownerID, goal.Params{
		Name:         "education",
		TargetAmount: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	// Another user must not see or edit it.
	saved := decimal.RequireFromString("10.00")

	_, err = svc.Update(context.Background(), uuid.New(), g.ID, goal.UpdateParams{
		SavedAmount: &saved,
	})
	assert.ErrorIs(t, err, goal.ErrNotFound)

	got, err := svc.Update(context.Background(), ownerID, g.ID, goal.UpdateParams{
		SavedAmount: &saved,
	})
	require.NoError(t, err)
	assert.True(t, got.SavedAmount.Equal(saved))
}
