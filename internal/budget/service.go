package budget

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/account"
	"github.com/Dev-MiMi/expensetracker/internal/record"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error

	// SumExpenses totals the expense records matching all three filters.
	SumExpenses(ctx context.Context, ownerID uuid.UUID, categories []string, accountIDs []uuid.UUID, start, end time.Time) (decimal.Decimal, error)
}

// AccountLookup is the slice of the account service the budget validator
// needs to check currency coherence.
type AccountLookup interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountLookup
}

func NewService(repo Repository, accounts AccountLookup) *Service {
	return &Service{repo: repo, accounts: accounts}
}

type Params struct {
	Name       string
	Categories []string
	Period     Period
	StartDate  time.Time
	EndDate    time.Time
	Amount     decimal.Decimal
	Currency   string
	AccountIDs []uuid.UUID
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params Params) (*Budget, error) {
	b := &Budget{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(params.Name),
		Categories: params.Categories,
		Period:     params.Period,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Amount:     params.Amount.Round(2),
		Currency:   strings.ToUpper(params.Currency),
		AccountIDs: params.AccountIDs,
	}

	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params Params) (*Budget, error) {
	b, err := s.repo.GetBudget(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	b.Name = strings.TrimSpace(params.Name)
	b.Categories = params.Categories
	b.Period = params.Period
	b.StartDate = params.StartDate
	b.EndDate = params.EndDate
	b.Amount = params.Amount.Round(2)
	b.Currency = strings.ToUpper(params.Currency)
	b.AccountIDs = params.AccountIDs

	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, ownerID, id)
}

// Progress reports the amount spent against the budget and the spent share
// of the target in percent. The percentage is zero when the target is zero
// or less, instead of dividing.
func (s *Service) Progress(ctx context.Context, b *Budget) (spent, percent decimal.Decimal, err error) {
	spent, err = s.repo.SumExpenses(ctx, b.OwnerID, b.Categories, b.AccountIDs, b.StartDate, b.EndDate)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if !b.Amount.IsPositive() {
		return spent, decimal.Zero, nil
	}

	return spent, spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(2), nil
}

func (s *Service) validate(ctx context.Context, b *Budget) error {
	if b.Name == "" {
		return validation.Errorf("name", "is required")
	}

	if len(b.Categories) == 0 {
		return validation.Errorf("categories", "at least one category is required")
	}

	for _, c := range b.Categories {
		if !record.ValidCategory(c) {
			return validation.Errorf("categories", "unknown category %q", c)
		}
	}

	if !b.Period.Valid() {
		return validation.Errorf("period", "must be one of Week, Month, Year, One-Time")
	}

	if b.EndDate.Before(b.StartDate) {
		return validation.Errorf("end_date", "must not be before start_date")
	}

	// Currency coherence: all referenced accounts share one currency and the
	// budget's currency, when given, must equal it.
	var shared string

	for _, id := range b.AccountIDs {
		a, err := s.accounts.Get(ctx, b.OwnerID, id)
		if err != nil {
			return validation.Errorf("accounts", "account %s not found", id)
		}

		if shared == "" {
			shared = a.Currency
			continue
		}

		if a.Currency != shared {
			return validation.Errorf("accounts", "accounts mix currencies %s and %s", shared, a.Currency)
		}
	}

	if shared != "" {
		if b.Currency == "" {
			b.Currency = shared
		} else if b.Currency != shared {
			return validation.Errorf("currency", "must match the accounts' currency %s", shared)
		}
	}

	if b.Currency == "" {
		return validation.Errorf("currency", "is required when no accounts are referenced")
	}

	if len(b.Currency) != 3 {
		return validation.Errorf("currency", "must be a 3-letter ISO 4217 code")
	}

	return nil
}
