package model

import "time"

const (
	EventSaleChanged = "SaleChanged"
	EventSaleDeleted = "SaleDeleted"
)

// SaleEvent is published whenever a sale row is written. Consumers must treat
// it as a hint to re-read state, never as a delta.
type SaleEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   SaleEventPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type SaleEventPayload struct {
	SaleID        string `json:"sale_id"`
	StockNumber   string `json:"stock_number"`
	SalespersonID string `json:"salesperson_id"`
}
