package importcsv

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
	"github.com/Dev-MiMi/expensetracker/internal/importer"
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	recordSvc *record.Service
}

func NewHandler(importSvc *importer.Service, recordSvc *record.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		recordSvc: recordSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type recordResponse struct {
	ID        uuid.UUID   `json:"id"`
	Kind      ledger.Kind `json:"kind"`
	Category  string      `json:"category"`
	Amount    string      `json:"amount"`
	Note      string      `json:"note"`
	Date      string      `json:"date"`
	CreatedAt time.Time   `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int              `json:"imported"`
	Records  []recordResponse `json:"records"`
}

type createParamsDTO struct {
	Kind     ledger.Kind     `json:"kind"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
	Date     string          `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing recordResponse  `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	AccountID uuid.UUID         `json:"account_id"`
	Params    []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	accountID, err := uuid.Parse(r.FormValue("account_id"))
	if err != nil {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Parse(r.Context(), ownerID, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.recordSvc.ImportBatch(r.Context(), ownerID, accountID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toRecordResponse(c.Existing),
			})
		}

		writeJSON(w, http.StatusConflict, resp)

		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.AccountID == uuid.Nil {
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}

	params := make([]record.CreateParams, 0, len(req.Params))

	for _, p := range req.Params {
		date, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params = append(params, record.CreateParams{
			Kind:     p.Kind,
			Category: p.Category,
			Amount:   p.Amount,
			Note:     p.Note,
			Date:     date,
		})
	}

	records, err := h.recordSvc.CreateBatch(r.Context(), ownerID, req.AccountID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(records))
}

func toSuccessResponse(records []*record.Record) importSuccessResponse {
	responses := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return importSuccessResponse{
		Imported: len(records),
		Records:  responses,
	}
}

func toRecordResponse(rec *record.Record) recordResponse {
	return recordResponse{
		ID:        rec.ID,
		Kind:      rec.Kind,
		Category:  rec.Category,
		Amount:    rec.Amount.StringFixed(2),
		Note:      rec.Note,
		Date:      rec.Date.Format(time.DateOnly),
		CreatedAt: rec.CreatedAt,
	}
}

func toParamsDTO(p record.CreateParams) createParamsDTO {
	return createParamsDTO{
		Kind:     p.Kind,
		Category: p.Category,
		Amount:   p.Amount,
		Note:     p.Note,
		Date:     p.Date.Format(time.DateOnly),
	}
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
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
