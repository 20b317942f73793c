package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRecordColumns = `
	id, user_id, kind, category, account_id, from_account_id, to_account_id,
	amount, note, date, time::text, is_recurring, recurrence_period,
	created_at, updated_at, deleted_at
`

func scanRecord(s scanner) (*record.Record, error) {
	var r record.Record

	var kindStr, timeStr string

	if err := s.Scan(
		&r.ID, &r.OwnerID, &kindStr, &r.Category,
		&r.AccountID, &r.FromAccountID, &r.ToAccountID,
		&r.Amount, &r.Note, &r.Date, &timeStr,
		&r.IsRecurring, &r.RecurrencePeriod,
		&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt,
	); err != nil {
		return nil, err
	}

	r.Kind = ledger.Kind(kindStr)

	t, err := parseTimeOfDay(timeStr)
	if err != nil {
		return nil, fmt.Errorf("parsing time column: %w", err)
	}

	r.Time = t

	return &r, nil
}

// parseTimeOfDay parses Postgres' "HH:MM:SS[.ffffff]" time text.
func parseTimeOfDay(s string) (time.Time, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	return time.Parse("15:04:05", s)
}

func (s *Store) GetRecord(ctx context.Context, ownerID, id uuid.UUID) (*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM records
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting record: %w", err)
	}

	return r, nil
}

func (s *Store) ListRecords(ctx context.Context, ownerID uuid.UUID, filter record.ListFilter) ([]*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM records
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}

	argIdx := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND (account_id = $%d OR from_account_id = $%d OR to_account_id = $%d)",
			argIdx, argIdx, argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC, time DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []*record.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return records, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

// Begin opens the database transaction every balance-affecting mutation
// runs in. Row locks taken by AdjustBalance serialize concurrent writers
// touching the same account.
func (s *Store) Begin(ctx context.Context) (record.LedgerTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: tx}, nil
}

func (t *ledgerTx) Commit() error   { return t.tx.Commit() }
func (t *ledgerTx) Rollback() error { return t.tx.Rollback() }

func (t *ledgerTx) InsertRecord(ctx context.Context, r *record.Record) error {
	query := `
		INSERT INTO records (
			user_id, kind, category, account_id, from_account_id, to_account_id,
			amount, note, date, time, is_recurring, recurrence_period
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		r.OwnerID,
		r.Kind,
		r.Category,
		r.AccountID,
		r.FromAccountID,
		r.ToAccountID,
		r.Amount,
		r.Note,
		r.Date,
		r.Time.Format("15:04:05"),
		r.IsRecurring,
		r.RecurrencePeriod,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}

	return nil
}

func (t *ledgerTx) UpdateRecord(ctx context.Context, r *record.Record) error {
	query := `
		UPDATE records
		SET kind = $1, category = $2, account_id = $3, from_account_id = $4,
			to_account_id = $5, amount = $6, note = $7, date = $8, time = $9,
			is_recurring = $10, recurrence_period = $11, updated_at = NOW()
		WHERE id = $12 AND user_id = $13 AND deleted_at IS NULL
	`

	res, err := t.tx.ExecContext(ctx, query,
		r.Kind,
		r.Category,
		r.AccountID,
		r.FromAccountID,
		r.ToAccountID,
		r.Amount,
		r.Note,
		r.Date,
		r.Time.Format("15:04:05"),
		r.IsRecurring,
		r.RecurrencePeriod,
		r.ID,
		r.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	if affected == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (t *ledgerTx) DeleteRecord(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE records
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	res, err := t.tx.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	if affected == 0 {
		return record.ErrNotFound
	}

	return nil
}

// AdjustBalance applies one signed delta to one account. The UPDATE takes a
// row lock held until commit, and zero affected rows means the account does
// not exist for this owner, which aborts the whole mutation.
func (t *ledgerTx) AdjustBalance(ctx context.Context, ownerID uuid.UUID, e ledger.Entry) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2 AND user_id = $3
	`

	res, err := t.tx.ExecContext(ctx, query, e.Delta, e.AccountID, ownerID)
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", record.ErrAccountNotFound, e.AccountID)
	}

	return nil
}

func (t *ledgerTx) FindExisting(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) ([]*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM records
		WHERE user_id = $1 AND deleted_at IS NULL AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := t.tx.QueryContext(ctx, query, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding existing records: %w", err)
	}
	defer rows.Close()

	var records []*record.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return records, nil
}
