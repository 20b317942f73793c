package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Number   string
	Type     Type
	Currency string
	Balance  decimal.Decimal
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validation.Errorf("name", "is required")
	}

	if !p.Type.Valid() {
		return validation.Errorf("account_type", "unknown account type %q", p.Type)
	}

	if len(p.Currency) != 3 {
		return validation.Errorf("currency", "must be a 3-letter ISO 4217 code")
	}

	return nil
}

// Create opens a new account for the owner. The opening balance is the only
// balance write that does not go through the ledger.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Account, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	a := &Account{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(params.Name),
		Number:   params.Number,
		Type:     params.Type,
		Currency: strings.ToUpper(params.Currency),
		Balance:  params.Balance.Round(2),
		IsActive: true,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID)
}

type UpdateParams struct {
	Name     *string
	Number   *string
	Type     *Type
	IsActive *bool
}

// Update changes the descriptive fields of an account. The balance is not
// updatable here; only record mutations move it.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Account, error) {
	a, err := s.repo.GetAccount(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, validation.Errorf("name", "is required")
		}

		a.Name = strings.TrimSpace(*params.Name)
	}

	if params.Number != nil {
		a.Number = *params.Number
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, validation.Errorf("account_type", "unknown account type %q", *params.Type)
		}

		a.Type = *params.Type
	}

	if params.IsActive != nil {
		a.IsActive = *params.IsActive
	}

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Delete removes an account. Accounts still referenced by transfer records
// are protected and produce ErrInUse.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, ownerID, id)
}
