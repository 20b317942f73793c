package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

type recordResponse struct {
	ID               uuid.UUID   `json:"id"`
	Kind             ledger.Kind `json:"kind"`
	Category         string      `json:"category,omitempty"`
	AccountID        *uuid.UUID  `json:"account_id,omitempty"`
	FromAccountID    *uuid.UUID  `json:"from_account_id,omitempty"`
	ToAccountID      *uuid.UUID  `json:"to_account_id,omitempty"`
	Amount           string      `json:"amount"`
	Note             string      `json:"note,omitempty"`
	Date             string      `json:"date"`
	Time             string      `json:"time"`
	IsRecurring      bool        `json:"is_recurring"`
	RecurrencePeriod string      `json:"recurrence_period,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(r *record.Record) recordResponse {
	return recordResponse{
		ID:               r.ID,
		Kind:             r.Kind,
		Category:         r.Category,
		AccountID:        r.AccountID,
		FromAccountID:    r.FromAccountID,
		ToAccountID:      r.ToAccountID,
		Amount:           r.Amount.StringFixed(2),
		Note:             r.Note,
		Date:             r.Date.Format(time.DateOnly),
		Time:             r.Time.Format("15:04:05"),
		IsRecurring:      r.IsRecurring,
		RecurrencePeriod: r.RecurrencePeriod,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toResponseList(records []*record.Record) []recordResponse {
	resp := make([]recordResponse, len(records))
	for i, r := range records {
		resp[i] = toResponse(r)
	}

	return resp
}
