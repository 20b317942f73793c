package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

// Suggester looks up a learned category for a raw statement description.
type Suggester interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, description string) (string, error)
}

const (
	fallbackExpenseCategory = "Others"
	fallbackIncomeCategory  = "Other Income"
)

// Service turns an uploaded statement into record params ready for the
// ledger: rows are parsed, then categorized from the owner's learned
// patterns, falling back to a catch-all category.
type Service struct {
	parser  *Parser
	matcher Suggester
}

func NewService(matcher Suggester) *Service {
	return &Service{
		parser:  NewParser(),
		matcher: matcher,
	}
}

func (s *Service) Parse(ctx context.Context, ownerID uuid.UUID, r io.Reader) ([]record.CreateParams, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range params {
		if params[i].Category != "" {
			continue
		}

		category, err := s.matcher.Suggest(ctx, ownerID, params[i].Note)
		if err != nil {
			return nil, fmt.Errorf("suggesting category: %w", err)
		}

		if category == "" {
			category = fallbackCategory(params[i].Kind)
		}

		params[i].Category = category
	}

	return params, nil
}

func fallbackCategory(kind ledger.Kind) string {
	if kind == ledger.KindIncome {
		return fallbackIncomeCategory
	}

	return fallbackExpenseCategory
}
