package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("budget not found")

// Period is the budget cycle label.
type Period string

const (
	PeriodWeek    Period = "Week"
	PeriodMonth   Period = "Month"
	PeriodYear    Period = "Year"
	PeriodOneTime Period = "One-Time"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodOneTime:
		return true
	}

	return false
}

// Budget caps expense spending for a set of categories across a set of
// accounts over a date range. All referenced accounts share one currency,
// which is also the budget's currency.
type Budget struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Categories []string
	Period     Period
	StartDate  time.Time
	EndDate    time.Time
	Amount     decimal.Decimal
	Currency   string
	AccountIDs []uuid.UUID
	CreatedAt  time.Time
}
