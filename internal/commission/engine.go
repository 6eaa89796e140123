// Package commission computes per-sale commission breakdowns and splits them
// between salespeople. Everything here is pure; malformed amounts count as 0.
package commission

import (
	"math"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/shopspring/decimal"
)

// Sale price tiers, highest first. Lower bounds are inclusive.
var saleTiers = []struct {
	min    decimal.Decimal
	amount decimal.Decimal
}{
	{decimal.NewFromInt(30000), decimal.NewFromInt(500)},
	{decimal.NewFromInt(20000), decimal.NewFromInt(400)},
	{decimal.NewFromInt(10000), decimal.NewFromInt(300)},
}

var (
	minSaleCommission = decimal.NewFromInt(200)
	newAccessoryStep  = decimal.NewFromInt(998)
	usedAccessoryStep = decimal.NewFromInt(850)
	profitStep        = decimal.NewFromInt(900)
	commissionPerStep = decimal.NewFromInt(100)
)

// money converts a raw amount, mapping NaN, infinities and negatives to zero.
func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// steps returns floor(v/step) * commissionPerStep.
func steps(v, step decimal.Decimal) decimal.Decimal {
	return v.Div(step).Floor().Mul(commissionPerStep)
}

func SaleCommission(salePrice float64) decimal.Decimal {
	price := money(salePrice)
	for _, tier := range saleTiers {
		if price.GreaterThanOrEqual(tier.min) {
			return tier.amount
		}
	}
	if price.IsPositive() {
		return minSaleCommission
	}
	return decimal.Zero
}

// AccessoriesCommission pays 100 per full 998 above the first 998 on new
// vehicles and 100 per full 850 on used ones.
func AccessoriesCommission(value float64, vehicleType model.VehicleType) decimal.Decimal {
	v := money(value)
	switch vehicleType {
	case model.VehicleNew:
		if !v.GreaterThan(newAccessoryStep) {
			return decimal.Zero
		}
		return steps(v.Sub(newAccessoryStep), newAccessoryStep)
	case model.VehicleUsed:
		return steps(v, usedAccessoryStep)
	}
	return decimal.Zero
}

// ProfitCommission covers warranty and service lines: 100 per full 900 of
// profit, never negative.
func ProfitCommission(sellingPrice, cost float64) decimal.Decimal {
	profit := money(sellingPrice).Sub(money(cost))
	if !profit.IsPositive() {
		return decimal.Zero
	}
	return steps(profit, profitStep)
}

func SpiffCommission(spiffBonus float64) decimal.Decimal {
	return money(spiffBonus)
}

// Compute returns the full breakdown for a sale. A nil sale yields zeros.
func Compute(s *model.Sale) model.CommissionBreakdown {
	if s == nil {
		return zeroBreakdown()
	}

	b := model.CommissionBreakdown{
		Vehicle:     SaleCommission(s.SalePrice),
		Accessories: AccessoriesCommission(s.AccessoriesValue, s.VehicleType),
		Warranty:    ProfitCommission(s.WarrantyPrice, s.WarrantyCost),
		Service:     ProfitCommission(s.ServicePrice, s.ServiceCost),
		Spiff:       SpiffCommission(s.SpiffBonus),
	}
	b.Total = b.Vehicle.Add(b.Accessories).Add(b.Warranty).Add(b.Service).Add(b.Spiff)
	return b
}

// TotalCommission is Compute(s).Total.
func TotalCommission(s *model.Sale) decimal.Decimal {
	return Compute(s).Total
}

// Apply recomputes and stores the breakdown on the sale.
func Apply(s *model.Sale) {
	if s == nil {
		return
	}
	s.CommissionBreakdown = Compute(s)
}

func zeroBreakdown() model.CommissionBreakdown {
	return model.CommissionBreakdown{
		Vehicle:     decimal.Zero,
		Accessories: decimal.Zero,
		Warranty:    decimal.Zero,
		Service:     decimal.Zero,
		Spiff:       decimal.Zero,
		Total:       decimal.Zero,
	}
}
