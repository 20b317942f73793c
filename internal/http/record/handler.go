package record

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/http/middleware"
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type Handler struct {
	svc *record.Service
}

func NewHandler(svc *record.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRecordRequest struct {
	Kind             ledger.Kind     `json:"kind"`
	Category         string          `json:"category"`
	AccountID        *uuid.UUID      `json:"account_id"`
	FromAccountID    *uuid.UUID      `json:"from_account_id"`
	ToAccountID      *uuid.UUID      `json:"to_account_id"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note"`
	Date             string          `json:"date"`
	Time             string          `json:"time"`
	Timestamp        *time.Time      `json:"timestamp"`
	IsRecurring      bool            `json:"is_recurring"`
	RecurrencePeriod string          `json:"recurrence_period"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, timeOfDay, err := splitTimestamp(req.Date, req.Time, req.Timestamp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Create(r.Context(), ownerID, record.CreateParams{
		Kind:             req.Kind,
		Category:         req.Category,
		AccountID:        req.AccountID,
		FromAccountID:    req.FromAccountID,
		ToAccountID:      req.ToAccountID,
		Amount:           req.Amount,
		Note:             req.Note,
		Date:             date,
		Time:             timeOfDay,
		IsRecurring:      req.IsRecurring,
		RecurrencePeriod: req.RecurrencePeriod,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := record.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("kind"); s != "" {
		kind := ledger.Kind(s)
		filter.Kind = &kind
	}

	if s := q.Get("category"); s != "" {
		category := s
		filter.Category = &category
	}

	if s := q.Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		filter.AccountID = &id
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		filter.EndDate = &t
	}

	records, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(records))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec))
}

type updateRecordRequest struct {
	Kind             *ledger.Kind     `json:"kind,omitempty"`
	Category         *string          `json:"category,omitempty"`
	AccountID        *uuid.UUID       `json:"account_id,omitempty"`
	FromAccountID    *uuid.UUID       `json:"from_account_id,omitempty"`
	ToAccountID      *uuid.UUID       `json:"to_account_id,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Note             *string          `json:"note,omitempty"`
	Date             *string          `json:"date,omitempty"`
	Time             *string          `json:"time,omitempty"`
	IsRecurring      *bool            `json:"is_recurring,omitempty"`
	RecurrencePeriod *string          `json:"recurrence_period,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := record.UpdateParams{
		Kind:             req.Kind,
		Category:         req.Category,
		AccountID:        req.AccountID,
		FromAccountID:    req.FromAccountID,
		ToAccountID:      req.ToAccountID,
		Amount:           req.Amount,
		Note:             req.Note,
		IsRecurring:      req.IsRecurring,
		RecurrencePeriod: req.RecurrencePeriod,
	}

	if req.Date != nil {
		t, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = &t
	}

	if req.Time != nil {
		t, err := parseTimeOfDay(*req.Time)
		if err != nil {
			http.Error(w, "invalid time", http.StatusBadRequest)
			return
		}

		params.Time = &t
	}

	rec, err := h.svc.Update(r.Context(), ownerID, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// splitTimestamp resolves the three accepted input shapes: a combined
// timestamp, separate date and time strings, or nothing at all (the service
// then defaults both from the server clock).
func splitTimestamp(dateStr, timeStr string, timestamp *time.Time) (time.Time, time.Time, error) {
	if timestamp != nil {
		ts := timestamp.UTC()
		date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		timeOfDay := time.Date(0, time.January, 1, ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC)

		return date, timeOfDay, nil
	}

	var date, timeOfDay time.Time

	if dateStr != "" {
		t, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid date, want YYYY-MM-DD")
		}

		date = t
	}

	if timeStr != "" {
		t, err := parseTimeOfDay(timeStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid time, want HH:MM or HH:MM:SS")
		}

		timeOfDay = t
	}

	return date, timeOfDay, nil
}

func parseTimeOfDay(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.New("invalid time of day")
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, record.ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	case errors.Is(err, record.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
