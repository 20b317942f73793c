package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest pattern contained in the
// description, preferring the most recently learned on ties.
func (s *Store) FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE user_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, ownerID, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, ownerID uuid.UUID, rawPattern, category string) error {
	query := `
		INSERT INTO category_mappings (user_id, raw_pattern, category)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.ExecContext(ctx, query, ownerID, rawPattern, category)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
