package dto

import "github.com/fekuna/omnipos-commission-service/internal/conflict"

type SaleFilters struct {
	SalespersonID string
	// ParticipantID matches sales owned by or shared with this salesperson.
	ParticipantID string
	StockNumber   string
	Status        string
	Page          int
	PageSize      int
}

type StockCheckResult struct {
	conflict.CheckResult
	SharedSale conflict.Validation `json:"shared_sale"`
}
