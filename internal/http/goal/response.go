package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dev-MiMi/expensetracker/internal/goal"
)

type goalResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	TargetAmount string    `json:"target_amount"`
	SavedAmount  string    `json:"saved_amount"`
	TargetDate   string    `json:"target_date"`
	Note         string    `json:"note,omitempty"`
	Progress     string    `json:"progress_percentage"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount.StringFixed(2),
		SavedAmount:  g.SavedAmount.StringFixed(2),
		TargetDate:   g.TargetDate.Format(time.DateOnly),
		Note:         g.Note,
		Progress:     g.Progress().StringFixed(2),
		CreatedAt:    g.CreatedAt,
	}
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}
