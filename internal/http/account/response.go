package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/account"
)

type accountResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Number    string       `json:"number,omitempty"`
	Type      account.Type `json:"account_type"`
	Currency  string       `json:"currency"`
	Balance   string       `json:"balance"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Number:    a.Number,
		Type:      a.Type,
		Currency:  a.Currency,
		Balance:   a.Balance.StringFixed(2),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}
