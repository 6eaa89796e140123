package conflict

import (
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Alert is derived from the current pending sales and never stored. It
// exists while two or more salespeople hold pending claims on one stock number.
type Alert struct {
	StockNumber string                `json:"stock_number"`
	Sales       []model.SaleWithOwner `json:"sales"`
	Priority    Priority              `json:"priority"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Claimants returns the distinct salesperson ids in claim order.
func (a *Alert) Claimants() []string {
	seen := make(map[string]bool, len(a.Sales))
	ids := make([]string, 0, len(a.Sales))
	for _, s := range a.Sales {
		if !seen[s.SalespersonID] {
			seen[s.SalespersonID] = true
			ids = append(ids, s.SalespersonID)
		}
	}
	return ids
}

func (a *Alert) sale(id string) *model.SaleWithOwner {
	for i := range a.Sales {
		if a.Sales[i].ID == id {
			return &a.Sales[i]
		}
	}
	return nil
}
