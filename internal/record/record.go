package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrAccountNotFound is raised when a balance adjustment hits no account
	// row, either because the referenced account does not exist or belongs to
	// another user. The whole mutation rolls back.
	ErrAccountNotFound = errors.New("referenced account not found")
)

// Record is one ledger entry: an income, expense, or transfer.
// Income and expense reference exactly one account; a transfer references a
// from/to pair. The unused references are always nil.
type Record struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Kind             ledger.Kind
	Category         string
	AccountID        *uuid.UUID
	FromAccountID    *uuid.UUID
	ToAccountID      *uuid.UUID
	Amount           decimal.Decimal
	Note             string
	Date             time.Time // calendar day only
	Time             time.Time // time of day only
	IsRecurring      bool
	RecurrencePeriod string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
}

// Movement is the balance-affecting view of the record.
func (r *Record) Movement() ledger.Movement {
	return ledger.Movement{
		Kind:          r.Kind,
		Amount:        r.Amount,
		AccountID:     r.AccountID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
	}
}
