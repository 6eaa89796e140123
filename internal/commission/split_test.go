package commission

import (
	"testing"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitTotal(t *testing.T) {
	total := decimal.NewFromInt(1000)

	s := SplitTotal(total, 60, true)
	assertMoney(t, 600, s.Own)
	assertMoney(t, 400, s.Partner)
	assert.True(t, s.Own.Add(s.Partner).Equal(total))

	s = SplitTotal(total, 60, false)
	assertMoney(t, 1000, s.Own)
	assertMoney(t, 0, s.Partner)

	s = SplitTotal(total, 0, true)
	assertMoney(t, 500, s.Own)
	assertMoney(t, 500, s.Partner)
}

func TestSplitTotal_SumsExactly(t *testing.T) {
	total := decimal.RequireFromString("733.33")
	for pct := 1; pct <= 99; pct++ {
		s := SplitTotal(total, pct, true)
		assert.True(t, s.Own.Add(s.Partner).Equal(total), "pct %d", pct)
	}
}

func TestSummarize(t *testing.T) {
	partner := "sp-2"
	sales := []model.Sale{
		{SalespersonID: "sp-1", Status: model.SaleStatusPending, CommissionBreakdown: model.CommissionBreakdown{Total: decimal.NewFromInt(600)}},
		{SalespersonID: "sp-1", Status: model.SaleStatusCompleted, IsSharedSale: true, PartnerID: &partner, SplitPercentage: 70,
			CommissionBreakdown: model.CommissionBreakdown{Total: decimal.NewFromInt(1000)}},
		{SalespersonID: "sp-1", Status: model.SaleStatusCancelled, CommissionBreakdown: model.CommissionBreakdown{Total: decimal.NewFromInt(900)}},
		{SalespersonID: "sp-3", Status: model.SaleStatusPending, CommissionBreakdown: model.CommissionBreakdown{Total: decimal.NewFromInt(400)}},
	}

	own := Summarize("sp-1", sales)
	assert.Equal(t, 2, own.SaleCount)
	assert.Equal(t, 1, own.SharedCount)
	assertMoney(t, 600, own.Pending)
	assertMoney(t, 700, own.Completed)
	assertMoney(t, 1300, own.Total)

	p := Summarize("sp-2", sales)
	assert.Equal(t, 1, p.SaleCount)
	assertMoney(t, 300, p.Completed)
	assertMoney(t, 300, p.Total)
}
