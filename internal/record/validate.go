package record

import (
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

// normalize enforces the kind/account shape before any balance is touched:
// income and expense carry exactly one account reference, a transfer carries
// a distinct from/to pair. References that do not belong to the kind are
// cleared rather than rejected, mirroring how the entry form behaves.
func (r *Record) normalize() error {
	if !r.Kind.Valid() {
		return validation.Errorf("kind", "must be one of income, expense, transfer")
	}

	if !r.Amount.IsPositive() {
		return validation.Errorf("amount", "must be greater than zero")
	}

	if r.Amount.Exponent() < -2 {
		return validation.Errorf("amount", "must have at most 2 decimal places")
	}

	switch r.Kind {
	case ledger.KindIncome, ledger.KindExpense:
		if r.AccountID == nil {
			return validation.Errorf("account", "is required for income and expense records")
		}

		if r.Category == "" {
			return validation.Errorf("category", "is required for income and expense records")
		}

		if !ValidCategory(r.Category) {
			return validation.Errorf("category", "unknown category %q", r.Category)
		}

		r.FromAccountID = nil
		r.ToAccountID = nil

	case ledger.KindTransfer:
		if r.FromAccountID == nil {
			return validation.Errorf("from_account", "is required for transfers")
		}

		if r.ToAccountID == nil {
			return validation.Errorf("to_account", "is required for transfers")
		}

		if *r.FromAccountID == *r.ToAccountID {
			return validation.Errorf("to_account", "must differ from from_account")
		}

		if r.Category != "" && !ValidCategory(r.Category) {
			return validation.Errorf("category", "unknown category %q", r.Category)
		}

		r.AccountID = nil
	}

	return nil
}
