package conflict

import (
	"sort"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

// Aggregate groups pending sales by stock number and returns one alert per
// number claimed by more than one salesperson. Blank stock numbers and
// non-pending sales are ignored. Alerts come back oldest first.
func Aggregate(sales []model.SaleWithOwner) []Alert {
	groups := make(map[string][]model.SaleWithOwner)
	for _, s := range sales {
		if s.Status != model.SaleStatusPending || s.StockNumber == "" {
			continue
		}
		groups[s.StockNumber] = append(groups[s.StockNumber], s)
	}

	alerts := make([]Alert, 0)
	for stock, group := range groups {
		if len(group) < 2 {
			continue
		}
		alert := Alert{StockNumber: stock, Sales: group}
		if len(alert.Claimants()) < 2 {
			continue
		}
		sortSales(alert.Sales)
		alert.CreatedAt = alert.Sales[0].CreatedAt
		alert.Priority = priorityFor(&alert)
		alerts = append(alerts, alert)
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].StockNumber < alerts[j].StockNumber
		}
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
	return alerts
}

// priorityFor is fixed at high until the business defines a ranking rule.
func priorityFor(*Alert) Priority {
	return PriorityHigh
}

func sortSales(sales []model.SaleWithOwner) {
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].ID < sales[j].ID
		}
		return sales[i].CreatedAt.Before(sales[j].CreatedAt)
	})
}
