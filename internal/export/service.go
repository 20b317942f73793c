package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

// RecordLister is the slice of the record service the exporter needs.
type RecordLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter record.ListFilter) ([]*record.Record, error)
}

// Service writes an owner's records as a CSV statement. The output round-trips
// through the importer's standard profile, so an export can be re-imported.
type Service struct {
	records RecordLister
}

func NewService(records RecordLister) *Service {
	return &Service{records: records}
}

var csvHeader = []string{
	"Date", "Time", "Kind", "Category", "Amount",
	"Account", "From Account", "To Account", "Description",
}

// WriteCSV streams the records matching the filter to w.
func (s *Service) WriteCSV(ctx context.Context, ownerID uuid.UUID, filter record.ListFilter, w io.Writer) error {
	records, err := s.records.List(ctx, ownerID, filter)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("writing record %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func row(r *record.Record) []string {
	amount := r.Amount.StringFixed(2)
	if r.Kind == ledger.KindExpense {
		amount = r.Amount.Neg().StringFixed(2)
	}

	return []string{
		r.Date.Format(time.DateOnly),
		r.Time.Format("15:04:05"),
		string(r.Kind),
		r.Category,
		amount,
		uuidString(r.AccountID),
		uuidString(r.FromAccountID),
		uuidString(r.ToAccountID),
		r.Note,
	}
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}

	return id.String()
}
