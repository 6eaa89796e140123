package dto

import (
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

type ActivityFilters struct {
	ActorID  string
	Action   string
	Page     int
	PageSize int
}

type ActivityResponse struct {
	ID        string          `json:"id"`
	ActorID   string          `json:"actor_id"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

func ToActivityResponse(a *model.ActivityLog) ActivityResponse {
	details := json.RawMessage(a.Details)
	if !json.Valid(details) {
		details = json.RawMessage("null")
	}
	return ActivityResponse{
		ID:        a.ID,
		ActorID:   a.ActorID,
		Action:    a.Action,
		Details:   details,
		CreatedAt: a.CreatedAt,
	}
}
