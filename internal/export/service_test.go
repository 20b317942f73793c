package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-MiMi/expensetracker/internal/export"
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

type stubLister struct {
	records []*record.Record
}

func (s *stubLister) List(ctx context.Context, ownerID uuid.UUID, filter record.ListFilter) ([]*record.Record, error) {
	return s.records, nil
}

func TestService_WriteCSV(t *testing.T) {
	accountID := uuid.New()
	toID := uuid.New()

	lister := &stubLister{records: []*record.Record{
		{
			ID:        uuid.New(),
			Kind:      ledger.KindExpense,
			Category:  "Groceries",
			AccountID: &accountID,
			Amount:    decimal.RequireFromString("12.30"),
			Note:      "weekly shop",
			Date:      time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			Time:      time.Date(0, 1, 1, 14, 5, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			Kind:          ledger.KindTransfer,
			FromAccountID: &accountID,
			ToAccountID:   &toID,
			Amount:        decimal.RequireFromString("100"),
			Date:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Time:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		},
	}}

	var buf bytes.Buffer

	svc := export.NewService(lister)
	require.NoError(t, svc.WriteCSV(context.Background(), uuid.New(), record.ListFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date", rows[0][0])

	assert.Equal(t, "2026-01-30", rows[1][0])
	assert.Equal(t, "14:05:00", rows[1][1])
	assert.Equal(t, "expense", rows[1][2])
	assert.Equal(t, "Groceries", rows[1][3])
	assert.Equal(t, "-12.30", rows[1][4])
	assert.Equal(t, accountID.String(), rows[1][5])
	assert.Equal(t, "weekly shop", rows[1][8])

	assert.Equal(t, "transfer", rows[2][2])
	assert.Equal(t, "100.00", rows[2][4])
	assert.Equal(t, accountID.String(), rows[2][6])
	assert.Equal(t, toID.String(), rows[2][7])
}

func TestService_WriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	svc := export.NewService(&stubLister{})
	require.NoError(t, svc.WriteCSV(context.Background(), uuid.New(), record.ListFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
