package dto

import "github.com/fekuna/omnipos-commission-service/internal/model"

type ResolveResult struct {
	StockNumber    string       `json:"stock_number"`
	State          string       `json:"state"`
	UpdatedSales   []model.Sale `json:"updated_sales"`
	DeletedSaleIDs []string     `json:"deleted_sale_ids"`
}
