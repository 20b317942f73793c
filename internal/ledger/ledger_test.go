package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestMovement_Entries(t *testing.T) {
	acct := uuid.New()
	from := uuid.New()
	to := uuid.New()

	type testCase struct {
		name     string
		movement ledger.Movement
		want     []ledger.Entry
		wantErr  error
	}

	tests := []testCase{
		{
			name: "IncomeAddsAmount",
			movement: ledger.Movement{
				Kind:      ledger.KindIncome,
				Amount:    dec("100.00"),
				AccountID: &acct,
			},
			want: []ledger.Entry{{AccountID: acct, Delta: dec("100.00")}},
		},
		{
			name: "ExpenseSubtractsAmount",
			movement: ledger.Movement{
				Kind:      ledger.KindExpense,
				Amount:    dec("30.00"),
				AccountID: &acct,
			},
			want: []ledger.Entry{{AccountID: acct, Delta: dec("-30.00")}},
		},
		{
			name: "TransferMovesBetweenAccounts",
			movement: ledger.Movement{
				Kind:          ledger.KindTransfer,
				Amount:        dec("20.00"),
				FromAccountID: &from,
				ToAccountID:   &to,
			},
			want: []ledger.Entry{
				{AccountID: from, Delta: dec("-20.00")},
				{AccountID: to, Delta: dec("20.00")},
			},
		},
		{
			name: "IncomeWithoutAccount",
			movement: ledger.Movement{
				Kind:   ledger.KindIncome,
				Amount: dec("10.00"),
			},
			wantErr: ledger.ErrMissingAccount,
		},
		{
			name: "TransferMissingDestination",
			movement: ledger.Movement{
				Kind:          ledger.KindTransfer,
				Amount:        dec("10.00"),
				FromAccountID: &from,
			},
			wantErr: ledger.ErrMissingAccount,
		},
		{
			name: "TransferSameEndpoints",
			movement: ledger.Movement{
				Kind:          ledger.KindTransfer,
				Amount:        dec("10.00"),
				FromAccountID: &from,
				ToAccountID:   &from,
			},
			wantErr: ledger.ErrSameAccount,
		},
		{
			name: "NegativeAmount",
			movement: ledger.Movement{
				Kind:      ledger.KindIncome,
				Amount:    dec("-1.00"),
				AccountID: &acct,
			},
			wantErr: ledger.ErrNegativeValue,
		},
		{
			name: "UnknownKind",
			movement: ledger.Movement{
				Kind:      ledger.Kind("loan"),
				Amount:    dec("10.00"),
				AccountID: &acct,
			},
			wantErr: ledger.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.movement.Entries()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i := range tt.want {
				assert.Equal(t, tt.want[i].AccountID, got[i].AccountID)
				assert.True(t, tt.want[i].Delta.Equal(got[i].Delta),
					"entry %d: want %s, got %s", i, tt.want[i].Delta, got[i].Delta)
			}
		})
	}
}

func TestMovement_ReverseEntries(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	m := ledger.Movement{
		Kind:          ledger.KindTransfer,
		Amount:        dec("20.00"),
		FromAccountID: &from,
		ToAccountID:   &to,
	}

	forward, err := m.Entries()
	require.NoError(t, err)

	reversed, err := m.ReverseEntries()
	require.NoError(t, err)
	require.Len(t, reversed, len(forward))

	// Reverse is the exact additive inverse: each pair cancels to zero.
	for i := range forward {
		assert.Equal(t, forward[i].AccountID, reversed[i].AccountID)
		assert.True(t, forward[i].Delta.Add(reversed[i].Delta).IsZero())
	}
}

// TestLedgerScenario walks the worked example: income 100 on balance 50,
// expense 30, transfer 20 from A to B, then the transfer edited to 50.
func TestLedgerScenario(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	balances := map[uuid.UUID]decimal.Decimal{
		a: dec("50.00"),
		b: dec("0.00"),
	}

	apply := func(entries []ledger.Entry) {
		for _, e := range entries {
			balances[e.AccountID] = balances[e.AccountID].Add(e.Delta)
		}
	}

	income := ledger.Movement{Kind: ledger.KindIncome, Amount: dec("100.00"), AccountID: &a}
	entries, err := income.Entries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("150.00")))

	expense := ledger.Movement{Kind: ledger.KindExpense, Amount: dec("30.00"), AccountID: &a}
	entries, err = expense.Entries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("120.00")))

	transfer := ledger.Movement{Kind: ledger.KindTransfer, Amount: dec("20.00"), FromAccountID: &a, ToAccountID: &b}
	entries, err = transfer.Entries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("100.00")))
	assert.True(t, balances[b].Equal(dec("20.00")))

	// Edit the transfer amount to 50: reverse the old effect, apply the new.
	entries, err = transfer.ReverseEntries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("120.00")))
	assert.True(t, balances[b].Equal(dec("0.00")))

	edited := ledger.Movement{Kind: ledger.KindTransfer, Amount: dec("50.00"), FromAccountID: &a, ToAccountID: &b}
	entries, err = edited.Entries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("70.00")))
	assert.True(t, balances[b].Equal(dec("50.00")))

	// Delete followed by re-apply restores the balance exactly.
	entries, err = edited.ReverseEntries()
	require.NoError(t, err)
	apply(entries)

	entries, err = edited.Entries()
	require.NoError(t, err)
	apply(entries)
	assert.True(t, balances[a].Equal(dec("70.00")))
	assert.True(t, balances[b].Equal(dec("50.00")))
}
