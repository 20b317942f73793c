package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrNameTaken = errors.New("you already have an account with this name")
	// ErrInUse means transfer records still reference the account as an
	// endpoint, so it cannot be removed.
	ErrInUse = errors.New("account is referenced by transfer records")
)

// Type is the informational category of an account.
type Type string

const (
	TypeGeneral    Type = "General"
	TypeCash       Type = "Cash"
	TypeCurrent    Type = "Current"
	TypeCreditCard Type = "Credit card"
	TypeSaving     Type = "Saving account"
	TypeInvestment Type = "Investment"
	TypeInsurance  Type = "Insurance"
	TypeBonus      Type = "Bonus"
	TypeLoan       Type = "Loan"
	TypeMortgage   Type = "Mortgage"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGeneral, TypeCash, TypeCurrent, TypeCreditCard, TypeSaving,
		TypeInvestment, TypeInsurance, TypeBonus, TypeLoan, TypeMortgage:
		return true
	}

	return false
}

// Account holds a running balance in one currency. The balance is only ever
// mutated through record operations, never edited directly.
type Account struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Number    string
	Type      Type
	Currency  string
	Balance   decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
}
