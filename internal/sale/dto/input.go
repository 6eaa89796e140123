package dto

type CreateSaleInput struct {
	SalespersonID    string  `validate:"required"`
	StockNumber      string  `validate:"required,max=64"`
	CustomerName     string  `validate:"required,max=255"`
	VehicleType      string  `validate:"required,oneof=new used"`
	SalePrice        float64 `validate:"gte=0"`
	AccessoriesValue float64 `validate:"gte=0"`
	WarrantyPrice    float64 `validate:"gte=0"`
	WarrantyCost     float64 `validate:"gte=0"`
	ServicePrice     float64 `validate:"gte=0"`
	ServiceCost      float64 `validate:"gte=0"`
	SpiffBonus       float64 `validate:"gte=0"`
	IsSharedSale     bool
	PartnerID        string
	SplitPercentage  int `validate:"omitempty,min=1,max=99"`
	Lang             string
}

type UpdateSaleInput struct {
	ID               string  `validate:"required"`
	Version          int     `validate:"required,min=1"`
	ActorID          string  `validate:"required"`
	StockNumber      string  `validate:"required,max=64"`
	CustomerName     string  `validate:"required,max=255"`
	VehicleType      string  `validate:"required,oneof=new used"`
	SalePrice        float64 `validate:"gte=0"`
	AccessoriesValue float64 `validate:"gte=0"`
	WarrantyPrice    float64 `validate:"gte=0"`
	WarrantyCost     float64 `validate:"gte=0"`
	ServicePrice     float64 `validate:"gte=0"`
	ServiceCost      float64 `validate:"gte=0"`
	SpiffBonus       float64 `validate:"gte=0"`
	IsSharedSale     bool
	PartnerID        string
	SplitPercentage  int `validate:"omitempty,min=1,max=99"`
	Lang             string
}

type UpdateStatusInput struct {
	ID      string `validate:"required"`
	Version int    `validate:"required,min=1"`
	ActorID string `validate:"required"`
	Status  string `validate:"required,oneof=pending completed cancelled"`
}

type CheckStockInput struct {
	StockNumber   string
	SalespersonID string `validate:"required"`
	ExcludeSaleID string
	IsSharedSale  bool
	PartnerID     string
	Lang          string
}
