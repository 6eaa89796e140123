package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

type VehicleType string

const (
	VehicleNew  VehicleType = "new"
	VehicleUsed VehicleType = "used"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// DefaultSplitPercentage is applied when a sale becomes shared without an
// agreed own share.
const DefaultSplitPercentage = 50

var (
	ErrSharedSaleNoPartner = errors.New("shared sale requires a partner")
	ErrInvalidSplit        = errors.New("split percentage must be between 1 and 99")
	ErrPartnerIsOwner      = errors.New("partner must differ from the salesperson")
)

// CommissionBreakdown always carries every line; Total is the sum of the rest.
type CommissionBreakdown struct {
	Vehicle     decimal.Decimal `db:"commission_sale" json:"sale"`
	Accessories decimal.Decimal `db:"commission_accessories" json:"accessories"`
	Warranty    decimal.Decimal `db:"commission_warranty" json:"warranty"`
	Service     decimal.Decimal `db:"commission_service" json:"service"`
	Spiff       decimal.Decimal `db:"commission_spiff" json:"spiff"`
	Total       decimal.Decimal `db:"commission_total" json:"total"`
}

type Sale struct {
	BaseModel
	StockNumber      string      `db:"stock_number" json:"stock_number"`
	SalespersonID    string      `db:"salesperson_id" json:"salesperson_id"`
	CustomerName     string      `db:"customer_name" json:"customer_name"`
	VehicleType      VehicleType `db:"vehicle_type" json:"vehicle_type"`
	SalePrice        float64     `db:"sale_price" json:"sale_price"`
	AccessoriesValue float64     `db:"accessories_value" json:"accessories_value"`
	WarrantyPrice    float64     `db:"warranty_price" json:"warranty_price"`
	WarrantyCost     float64     `db:"warranty_cost" json:"warranty_cost"`
	ServicePrice     float64     `db:"service_price" json:"service_price"`
	ServiceCost      float64     `db:"service_cost" json:"service_cost"`
	SpiffBonus       float64     `db:"spiff_bonus" json:"spiff_bonus"`
	IsSharedSale     bool        `db:"is_shared_sale" json:"is_shared_sale"`
	PartnerID        *string     `db:"partner_id" json:"partner_id"` // Nullable
	SplitPercentage  int         `db:"split_percentage" json:"split_percentage"`
	Status           SaleStatus  `db:"status" json:"status"`
	Version          int         `db:"version" json:"version"`

	CommissionBreakdown `json:"commission_breakdown"`
}

// SaleWithOwner is a sale joined with its salesperson's display name.
type SaleWithOwner struct {
	Sale
	SalespersonName string `db:"salesperson_name" json:"salesperson_name"`
}

// PartnerShare is the percentage owed to the partner on a shared sale.
func (s *Sale) PartnerShare() int {
	if !s.IsSharedSale {
		return 0
	}
	return 100 - s.SplitPercentage
}

// ValidateShare checks the shared-sale rule: a partner other than the
// owner and an own share in 1..99.
func (s *Sale) ValidateShare() error {
	if !s.IsSharedSale {
		return nil
	}
	if s.PartnerID == nil || *s.PartnerID == "" {
		return ErrSharedSaleNoPartner
	}
	if *s.PartnerID == s.SalespersonID {
		return ErrPartnerIsOwner
	}
	if s.SplitPercentage < 1 || s.SplitPercentage > 99 {
		return ErrInvalidSplit
	}
	return nil
}
