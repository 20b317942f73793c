package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("goal not found")

// Labels are the preset goal names. LabelOther lets the user supply a custom
// name instead.
const LabelOther = "other"

var Labels = []string{
	"new_vehicle",
	"new_home",
	"holiday_trip",
	"health_care",
	"education",
	"emergency_fund",
	"party",
	"kidspoiling",
	"charity",
	LabelOther,
}

func ValidLabel(name string) bool {
	for _, l := range Labels {
		if l == name {
			return true
		}
	}

	return false
}

// Goal tracks savings toward a target amount by a target date.
type Goal struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	TargetDate   time.Time
	Note         string
	CreatedAt    time.Time
}

// Progress is the saved share of the target in percent, zero when the
// target is zero.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	return g.SavedAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}
