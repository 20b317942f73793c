package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/budget"
)

type budgetResponse struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Categories []string      `json:"categories"`
	Period     budget.Period `json:"period"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Amount     string        `json:"amount"`
	Currency   string        `json:"currency"`
	AccountIDs []uuid.UUID   `json:"account_ids"`
	Spent      string        `json:"spent"`
	Progress   string        `json:"progress_percentage"`
	CreatedAt  time.Time     `json:"created_at"`
}

func toResponse(b *budget.Budget, spent, progress decimal.Decimal) budgetResponse {
	accountIDs := b.AccountIDs
	if accountIDs == nil {
		accountIDs = []uuid.UUID{}
	}

	return budgetResponse{
		ID:         b.ID,
		Name:       b.Name,
		Categories: b.Categories,
		Period:     b.Period,
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		Amount:     b.Amount.StringFixed(2),
		Currency:   b.Currency,
		AccountIDs: accountIDs,
		Spent:      spent.StringFixed(2),
		Progress:   progress.StringFixed(2),
		CreatedAt:  b.CreatedAt,
	}
}
