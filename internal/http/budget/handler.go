package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/account"
	"github.com/Dev-MiMi/expensetracker/internal/budget"
	"github.com/Dev-MiMi/expensetracker/internal/http/middleware"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetRequest struct {
	Name       string          `json:"name"`
	Categories []string        `json:"categories"`
	Period     budget.Period   `json:"period"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	AccountIDs []uuid.UUID     `json:"account_ids"`
}

func (r budgetRequest) params() (budget.Params, error) {
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return budget.Params{}, errors.New("invalid start_date, want YYYY-MM-DD")
	}

	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return budget.Params{}, errors.New("invalid end_date, want YYYY-MM-DD")
	}

	return budget.Params{
		Name:       r.Name,
		Categories: r.Categories,
		Period:     r.Period,
		StartDate:  start,
		EndDate:    end,
		Amount:     r.Amount,
		Currency:   r.Currency,
		AccountIDs: r.AccountIDs,
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), ownerID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithProgress(w, r, http.StatusCreated, b)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]budgetResponse, 0, len(budgets))

	for _, b := range budgets {
		spent, percent, err := h.svc.Progress(r.Context(), b)
		if err != nil {
			writeError(w, err)
			return
		}

		resp = append(resp, toResponse(b, spent, percent))
	}

	writeJSON(w, http.StatusOK, resp)
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

	b, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithProgress(w, r, http.StatusOK, b)
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

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.params()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Update(r.Context(), ownerID, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithProgress(w, r, http.StatusOK, b)
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

func (h *Handler) respondWithProgress(w http.ResponseWriter, r *http.Request, status int, b *budget.Budget) {
	spent, percent, err := h.svc.Progress(r.Context(), b)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, status, toResponse(b, spent, percent))
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "budget not found", http.StatusNotFound)
	case errors.Is(err, account.ErrNotFound):
		http.Error(w, "referenced account not found", http.StatusBadRequest)
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
