package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

func TestNormalize_ClearsForeignReferences(t *testing.T) {
	acct := uuid.New()
	from := uuid.New()
	to := uuid.New()

	expense := &Record{
		Kind:          ledger.KindExpense,
		Category:      "Groceries",
		AccountID:     &acct,
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.RequireFromString("10.00"),
	}

	require.NoError(t, expense.normalize())
	assert.Nil(t, expense.FromAccountID)
	assert.Nil(t, expense.ToAccountID)
	assert.NotNil(t, expense.AccountID)

	transfer := &Record{
		Kind:          ledger.KindTransfer,
		AccountID:     &acct,
		FromAccountID: &from,
		ToAccountID:   &to,
		Amount:        decimal.RequireFromString("10.00"),
	}

	require.NoError(t, transfer.normalize())
	assert.Nil(t, transfer.AccountID)
	assert.NotNil(t, transfer.FromAccountID)
	assert.NotNil(t, transfer.ToAccountID)
}

func TestNormalize_Rejections(t *testing.T) {
	acct := uuid.New()
	from := uuid.New()

	type testCase struct {
		name      string
		record    *Record
		wantField string
	}

	tests := []testCase{
		{
			name:      "UnknownKind",
			record:    &Record{Kind: "loan", Amount: decimal.RequireFromString("1.00")},
			wantField: "kind",
		},
		{
			name: "ZeroAmount",
			record: &Record{
				Kind:      ledger.KindIncome,
				Category:  "Salary",
				AccountID: &acct,
				Amount:    decimal.Zero,
			},
			wantField: "amount",
		},
		{
			name: "TooManyDecimalPlaces",
			record: &Record{
				Kind:      ledger.KindIncome,
				Category:  "Salary",
				AccountID: &acct,
				Amount:    decimal.RequireFromString("1.001"),
			},
			wantField: "amount",
		},
		{
			name: "ExpenseWithoutAccount",
			record: &Record{
				Kind:     ledger.KindExpense,
				Category: "Groceries",
				Amount:   decimal.RequireFromString("1.00"),
			},
			wantField: "account",
		},
		{
			name: "IncomeWithoutCategory",
			record: &Record{
				Kind:      ledger.KindIncome,
				AccountID: &acct,
				Amount:    decimal.RequireFromString("1.00"),
			},
			wantField: "category",
		},
		{
			name: "IncomeUnknownCategory",
			record: &Record{
				Kind:      ledger.KindIncome,
				Category:  "Lottery",
				AccountID: &acct,
				Amount:    decimal.RequireFromString("1.00"),
			},
			wantField: "category",
		},
		{
			name: "TransferMissingFrom",
			record: &Record{
				Kind:        ledger.KindTransfer,
				ToAccountID: &acct,
				Amount:      decimal.RequireFromString("1.00"),
			},
			wantField: "from_account",
		},
		{
			name: "TransferSameEndpoints",
			record: &Record{
				Kind:          ledger.KindTransfer,
				FromAccountID: &from,
				ToAccountID:   &from,
				Amount:        decimal.RequireFromString("1.00"),
			},
			wantField: "to_account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.normalize()

			var vErr *validation.Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}
