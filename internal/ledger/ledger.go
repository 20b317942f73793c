// Package ledger computes the signed balance effects financial records apply
// to accounts. Every record mutation goes through here so that an account's
// stored balance always equals the net effect of its active records.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingAccount means a movement references no account for a leg
	// that requires one. Applying it would silently under-adjust a balance,
	// so it aborts the mutation instead.
	ErrMissingAccount = errors.New("movement references no account")

	ErrUnknownKind   = errors.New("unknown movement kind")
	ErrSameAccount   = errors.New("transfer endpoints must differ")
	ErrNegativeValue = errors.New("movement amount must not be negative")
)

// Kind classifies a movement. The effect sign is derived from the kind,
// never from the stored amount.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}

	return false
}

// Movement is the balance-affecting view of a record: its kind, magnitude,
// and the account leg(s) it touches. Income and expense use AccountID;
// transfers use the From/To pair.
type Movement struct {
	Kind          Kind
	Amount        decimal.Decimal
	AccountID     *uuid.UUID
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
}

// Entry is one signed balance delta against one account.
type Entry struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// Entries returns the balance deltas applying the movement requires.
// Income adds the amount, expense subtracts it, a transfer subtracts from
// the source and adds to the destination.
func (m Movement) Entries() ([]Entry, error) {
	if m.Amount.IsNegative() {
		return nil, ErrNegativeValue
	}

	switch m.Kind {
	case KindIncome:
		if m.AccountID == nil {
			return nil, fmt.Errorf("%w: income needs an account", ErrMissingAccount)
		}

		return []Entry{{AccountID: *m.AccountID, Delta: m.Amount}}, nil

	case KindExpense:
		if m.AccountID == nil {
			return nil, fmt.Errorf("%w: expense needs an account", ErrMissingAccount)
		}

		return []Entry{{AccountID: *m.AccountID, Delta: m.Amount.Neg()}}, nil

	case KindTransfer:
		if m.FromAccountID == nil || m.ToAccountID == nil {
			return nil, fmt.Errorf("%w: transfer needs both endpoints", ErrMissingAccount)
		}

		if *m.FromAccountID == *m.ToAccountID {
			return nil, ErrSameAccount
		}

		return []Entry{
			{AccountID: *m.FromAccountID, Delta: m.Amount.Neg()},
			{AccountID: *m.ToAccountID, Delta: m.Amount},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
}

// ReverseEntries returns the exact additive inverse of Entries, used before
// re-applying an edited movement and before discarding a deleted one.
func (m Movement) ReverseEntries() ([]Entry, error) {
	entries, err := m.Entries()
	if err != nil {
		return nil, err
	}

	reversed := make([]Entry, len(entries))
	for i, e := range entries {
		reversed[i] = Entry{AccountID: e.AccountID, Delta: e.Delta.Neg()}
	}

	return reversed, nil
}
