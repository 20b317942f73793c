package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	GetRecord(ctx context.Context, ownerID, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Record, error)

	// Begin opens the atomic unit every balance-affecting operation runs in:
	// the record write and all account adjustments commit together or not
	// at all.
	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is one database transaction over the ledger. AdjustBalance locks
// the account row it touches, serializing concurrent mutation per account.
type LedgerTx interface {
	InsertRecord(ctx context.Context, r *Record) error
	UpdateRecord(ctx context.Context, r *Record) error
	DeleteRecord(ctx context.Context, ownerID, id uuid.UUID) error
	AdjustBalance(ctx context.Context, ownerID uuid.UUID, e ledger.Entry) error
	FindExisting(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) ([]*Record, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Kind             ledger.Kind
	Category         string
	AccountID        *uuid.UUID
	FromAccountID    *uuid.UUID
	ToAccountID      *uuid.UUID
	Amount           decimal.Decimal
	Note             string
	Date             time.Time
	Time             time.Time
	IsRecurring      bool
	RecurrencePeriod string
}

type ListFilter struct {
	Kind      *ledger.Kind
	Category  *string
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// Create validates the record, persists it, and applies its balance effect
// to the referenced account(s) in one transaction. An unset date or time is
// defaulted from the server clock here, once, and never re-derived on edit.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Record, error) {
	r := &Record{
		OwnerID:          ownerID,
		Kind:             params.Kind,
		Category:         params.Category,
		AccountID:        params.AccountID,
		FromAccountID:    params.FromAccountID,
		ToAccountID:      params.ToAccountID,
		Amount:           params.Amount,
		Note:             params.Note,
		Date:             params.Date,
		Time:             params.Time,
		IsRecurring:      params.IsRecurring,
		RecurrencePeriod: params.RecurrencePeriod,
	}

	if err := r.normalize(); err != nil {
		return nil, err
	}

	s.defaultTimestamps(r)

	entries, err := r.Movement().Entries()
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.InsertRecord(ctx, r); err != nil {
		return nil, err
	}

	if err := s.adjust(ctx, tx, ownerID, entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Record, error) {
	return s.repo.GetRecord(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, ownerID, filter)
}

type UpdateParams struct {
	Kind             *ledger.Kind
	Category         *string
	AccountID        *uuid.UUID
	FromAccountID    *uuid.UUID
	ToAccountID      *uuid.UUID
	Amount           *decimal.Decimal
	Note             *string
	Date             *time.Time
	Time             *time.Time
	IsRecurring      *bool
	RecurrencePeriod *string
}

// Update edits a record as reverse-then-reapply: the stored record's effect
// is backed out and the edited record's effect applied, all inside one
// transaction, so no reader ever observes a half-reversed balance.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Record, error) {
	old, err := s.repo.GetRecord(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated := *old
	applyPatch(&updated, params)

	if err := updated.normalize(); err != nil {
		return nil, err
	}

	reverse, err := old.Movement().ReverseEntries()
	if err != nil {
		return nil, fmt.Errorf("reversing stored record %s: %w", old.ID, err)
	}

	forward, err := updated.Movement().Entries()
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.adjust(ctx, tx, ownerID, reverse); err != nil {
		return nil, err
	}

	if err := s.adjust(ctx, tx, ownerID, forward); err != nil {
		return nil, err
	}

	if err := tx.UpdateRecord(ctx, &updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}

	return &updated, nil
}

// Delete reverses the record's balance effect and soft-deletes it, atomically.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	old, err := s.repo.GetRecord(ctx, ownerID, id)
	if err != nil {
		return err
	}

	reverse, err := old.Movement().ReverseEntries()
	if err != nil {
		return fmt.Errorf("reversing stored record %s: %w", old.ID, err)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.adjust(ctx, tx, ownerID, reverse); err != nil {
		return err
	}

	if err := tx.DeleteRecord(ctx, ownerID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}

	return nil
}

type ImportResult struct {
	Imported  []*Record
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Record
}

type dupKey struct {
	Date   string
	Amount string
	Kind   ledger.Kind
	Note   string
}

func keyOf(kind ledger.Kind, amount decimal.Decimal, date time.Time, note string) dupKey {
	return dupKey{
		Date:   date.Format(time.DateOnly),
		Amount: amount.StringFixed(2),
		Kind:   kind,
		Note:   note,
	}
}

// ImportBatch creates the given records against one account, skipping the
// whole batch when any of them collides with an existing record on
// (date, amount, kind, note). Conflicts are reported back for the caller
// to resolve and re-submit via CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, ownerID, accountID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	params = s.prepareImport(accountID, params)

	minDate, maxDate := dateRange(params)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.FindExisting(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding existing records: %w", err)
	}

	lookup := make(map[dupKey]*Record, len(existing))
	for _, r := range existing {
		lookup[keyOf(r.Kind, r.Amount, r.Date, r.Note)] = r
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		if found, ok := lookup[keyOf(p.Kind, p.Amount, p.Date, p.Note)]; ok {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: found})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	records, err := s.insertBatch(ctx, tx, ownerID, newParams)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}

	return &ImportResult{Imported: records}, nil
}

// CreateBatch persists the given records without duplicate detection, in one
// transaction. Used to confirm an import after conflicts were reviewed.
func (s *Service) CreateBatch(ctx context.Context, ownerID, accountID uuid.UUID, params []CreateParams) ([]*Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	params = s.prepareImport(accountID, params)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	records, err := s.insertBatch(ctx, tx, ownerID, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger tx: %w", err)
	}

	return records, nil
}

func (s *Service) insertBatch(ctx context.Context, tx LedgerTx, ownerID uuid.UUID, params []CreateParams) ([]*Record, error) {
	records := make([]*Record, 0, len(params))

	for _, p := range params {
		r := &Record{
			OwnerID:   ownerID,
			Kind:      p.Kind,
			Category:  p.Category,
			AccountID: p.AccountID,
			Amount:    p.Amount,
			Note:      p.Note,
			Date:      p.Date,
			Time:      p.Time,
		}

		if err := r.normalize(); err != nil {
			return nil, err
		}

		s.defaultTimestamps(r)

		entries, err := r.Movement().Entries()
		if err != nil {
			return nil, err
		}

		if err := tx.InsertRecord(ctx, r); err != nil {
			return nil, err
		}

		if err := s.adjust(ctx, tx, ownerID, entries); err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, nil
}

// prepareImport pins all imported movements to the target account.
func (s *Service) prepareImport(accountID uuid.UUID, params []CreateParams) []CreateParams {
	prepared := make([]CreateParams, len(params))

	for i, p := range params {
		id := accountID
		p.AccountID = &id
		p.FromAccountID = nil
		p.ToAccountID = nil
		prepared[i] = p
	}

	return prepared
}

func (s *Service) adjust(ctx context.Context, tx LedgerTx, ownerID uuid.UUID, entries []ledger.Entry) error {
	for _, e := range entries {
		if err := tx.AdjustBalance(ctx, ownerID, e); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) defaultTimestamps(r *Record) {
	now := s.now()

	if r.Date.IsZero() {
		r.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if r.Time.IsZero() {
		r.Time = time.Date(0, time.January, 1, now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
	}
}

func applyPatch(r *Record, params UpdateParams) {
	if params.Kind != nil {
		r.Kind = *params.Kind
	}

	if params.Category != nil {
		r.Category = *params.Category
	}

	if params.AccountID != nil {
		r.AccountID = params.AccountID
	}

	if params.FromAccountID != nil {
		r.FromAccountID = params.FromAccountID
	}

	if params.ToAccountID != nil {
		r.ToAccountID = params.ToAccountID
	}

	if params.Amount != nil {
		r.Amount = *params.Amount
	}

	if params.Note != nil {
		r.Note = *params.Note
	}

	if params.Date != nil {
		r.Date = *params.Date
	}

	if params.Time != nil {
		r.Time = *params.Time
	}

	if params.IsRecurring != nil {
		r.IsRecurring = *params.IsRecurring
	}

	if params.RecurrencePeriod != nil {
		r.RecurrencePeriod = *params.RecurrencePeriod
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}
