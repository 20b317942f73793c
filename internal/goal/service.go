package goal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name         string
	CustomName   string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	TargetDate   time.Time
	Note         string
}

// resolveName collapses the "other" label to the user-supplied custom name.
func resolveName(params Params) (string, error) {
	name := strings.TrimSpace(params.Name)

	if !ValidLabel(name) {
		return "", validation.Errorf("goal_name", "unknown goal label %q", name)
	}

	if name == LabelOther {
		if custom := strings.TrimSpace(params.CustomName); custom != "" {
			return custom, nil
		}
	}

	return name, nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params Params) (*Goal, error) {
	name, err := resolveName(params)
	if err != nil {
		return nil, err
	}

	if params.TargetAmount.IsNegative() {
		return nil, validation.Errorf("target_amount", "must not be negative")
	}

	g := &Goal{
		OwnerID:      ownerID,
		Name:         name,
		TargetAmount: params.TargetAmount.Round(2),
		SavedAmount:  params.SavedAmount.Round(2),
		TargetDate:   params.TargetDate,
		Note:         params.Note,
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, ownerID)
}

type UpdateParams struct {
	Name         *string
	CustomName   *string
	TargetAmount *decimal.Decimal
	SavedAmount  *decimal.Decimal
	TargetDate   *time.Time
	Note         *string
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		custom := ""
		if params.CustomName != nil {
			custom = *params.CustomName
		}

		name, err := resolveName(Params{Name: *params.Name, CustomName: custom})
		if err != nil {
			return nil, err
		}

		g.Name = name
	}

	if params.TargetAmount != nil {
		if params.TargetAmount.IsNegative() {
			return nil, validation.Errorf("target_amount", "must not be negative")
		}

		g.TargetAmount = params.TargetAmount.Round(2)
	}

	if params.SavedAmount != nil {
		g.SavedAmount = params.SavedAmount.Round(2)
	}

	if params.TargetDate != nil {
		g.TargetDate = *params.TargetDate
	}

	if params.Note != nil {
		g.Note = *params.Note
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, ownerID, id)
}
