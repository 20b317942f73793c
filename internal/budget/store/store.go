package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectBudgetColumns = `id, user_id, name, categories, period, start_date, end_date, amount, currency, created_at`

// Categories are persisted pipe-joined. A comma would collide with category
// names like "Communication, PC".
func joinCategories(categories []string) string {
	return strings.Join(categories, "|")
}

func splitCategories(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, "|")
}

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var periodStr, categoriesStr string

	if err := s.Scan(
		&b.ID, &b.OwnerID, &b.Name, &categoriesStr, &periodStr,
		&b.StartDate, &b.EndDate, &b.Amount, &b.Currency, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Period = budget.Period(periodStr)
	b.Categories = splitCategories(categoriesStr)

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO budgets (user_id, name, categories, period, start_date, end_date, amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		b.OwnerID,
		b.Name,
		joinCategories(b.Categories),
		b.Period,
		b.StartDate,
		b.EndDate,
		b.Amount,
		b.Currency,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	if err := insertBudgetAccounts(ctx, tx, b); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing budget: %w", err)
	}

	return nil
}

func insertBudgetAccounts(ctx context.Context, tx *sql.Tx, b *budget.Budget) error {
	query := `INSERT INTO budget_accounts (budget_id, account_id) VALUES ($1, $2)`

	for _, accountID := range b.AccountIDs {
		if _, err := tx.ExecContext(ctx, query, b.ID, accountID); err != nil {
			return fmt.Errorf("linking budget account: %w", err)
		}
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE id = $1 AND user_id = $2`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	if err := s.loadAccountIDs(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	for _, b := range budgets {
		if err := s.loadAccountIDs(ctx, b); err != nil {
			return nil, err
		}
	}

	return budgets, nil
}

func (s *Store) loadAccountIDs(ctx context.Context, b *budget.Budget) error {
	query := `SELECT account_id FROM budget_accounts WHERE budget_id = $1`

	rows, err := s.db.QueryContext(ctx, query, b.ID)
	if err != nil {
		return fmt.Errorf("loading budget accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning budget account: %w", err)
		}

		b.AccountIDs = append(b.AccountIDs, id)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating budget account rows: %w", err)
	}

	return nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE budgets
		SET name = $1, categories = $2, period = $3, start_date = $4,
			end_date = $5, amount = $6, currency = $7
		WHERE id = $8 AND user_id = $9
	`

	res, err := tx.ExecContext(ctx, query,
		b.Name,
		joinCategories(b.Categories),
		b.Period,
		b.StartDate,
		b.EndDate,
		b.Amount,
		b.Currency,
		b.ID,
		b.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	if affected == 0 {
		return budget.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM budget_accounts WHERE budget_id = $1`, b.ID); err != nil {
		return fmt.Errorf("clearing budget accounts: %w", err)
	}

	if err := insertBudgetAccounts(ctx, tx, b); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if affected == 0 {
		return budget.ErrNotFound
	}

	return nil
}

// SumExpenses totals non-deleted expense records matching the budget's
// category set, account set, and date range.
func (s *Store) SumExpenses(ctx context.Context, ownerID uuid.UUID, categories []string, accountIDs []uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM records
		WHERE user_id = $1
			AND kind = 'expense'
			AND deleted_at IS NULL
			AND category = ANY($2)
			AND account_id::text = ANY($3)
			AND date >= $4 AND date <= $5
	`

	ids := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id.String()
	}

	var sum decimal.Decimal

	err := s.db.QueryRowContext(ctx, query, ownerID, categories, ids, start, end).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses: %w", err)
	}

	return sum, nil
}
