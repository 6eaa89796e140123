package commission

import (
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Split is a commission total apportioned between the owner and a partner.
// Own + Partner always equals the total it was computed from.
type Split struct {
	Own     decimal.Decimal `json:"own"`
	Partner decimal.Decimal `json:"partner"`
}

// SplitTotal divides total by the owner's percentage. Own is rounded to
// cents and the partner receives the remainder. Percentages outside 1..99
// fall back to an even split.
func SplitTotal(total decimal.Decimal, splitPercentage int, shared bool) Split {
	if !shared {
		return Split{Own: total, Partner: decimal.Zero}
	}
	if splitPercentage < 1 || splitPercentage > 99 {
		splitPercentage = model.DefaultSplitPercentage
	}
	own := total.Mul(decimal.NewFromInt(int64(splitPercentage))).Div(hundred).Round(2)
	return Split{Own: own, Partner: total.Sub(own)}
}

// SplitSale splits the sale's stored commission total using its own
// SplitPercentage.
func SplitSale(s *model.Sale) Split {
	return SplitTotal(s.Total, s.SplitPercentage, s.IsSharedSale)
}

// Summary is a salesperson's commission across the sales they own or partner on.
type Summary struct {
	SalespersonID string          `json:"salesperson_id"`
	SaleCount     int             `json:"sale_count"`
	SharedCount   int             `json:"shared_count"`
	Pending       decimal.Decimal `json:"pending"`
	Completed     decimal.Decimal `json:"completed"`
	Total         decimal.Decimal `json:"total"`
}

// Summarize credits salespersonID with the owner share of their own sales
// and the partner share of sales they partner on. Cancelled sales are skipped.
func Summarize(salespersonID string, sales []model.Sale) Summary {
	sum := Summary{
		SalespersonID: salespersonID,
		Pending:       decimal.Zero,
		Completed:     decimal.Zero,
		Total:         decimal.Zero,
	}

	for i := range sales {
		s := &sales[i]
		if s.Status == model.SaleStatusCancelled {
			continue
		}

		split := SplitSale(s)
		var earned decimal.Decimal
		switch {
		case s.SalespersonID == salespersonID:
			earned = split.Own
		case s.IsSharedSale && s.PartnerID != nil && *s.PartnerID == salespersonID:
			earned = split.Partner
		default:
			continue
		}

		sum.SaleCount++
		if s.IsSharedSale {
			sum.SharedCount++
		}
		if s.Status == model.SaleStatusCompleted {
			sum.Completed = sum.Completed.Add(earned)
		} else {
			sum.Pending = sum.Pending.Add(earned)
		}
		sum.Total = sum.Total.Add(earned)
	}

	return sum
}
