package matching

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/record"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type Repository interface {
	FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (string, error)
	CreateMapping(ctx context.Context, ownerID uuid.UUID, rawPattern, category string) error
}

// Service maps raw statement descriptions to record categories, so imported
// rows arrive pre-categorized.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given description.
// Returns empty string if no pattern matches.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, description string) (string, error) {
	return s.repo.FindCategory(ctx, ownerID, description)
}

// Learn remembers a new mapping between a raw pattern and a category.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, rawPattern, category string) error {
	if rawPattern == "" {
		return validation.Errorf("raw_pattern", "is required")
	}

	if !record.ValidCategory(category) {
		return validation.Errorf("category", "unknown category %q", category)
	}

	return s.repo.CreateMapping(ctx, ownerID, rawPattern, category)
}
