package conflict

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func pendingSale(id, stock, salespersonID, name, customer string, offset time.Duration) model.SaleWithOwner {
	return model.SaleWithOwner{
		Sale: model.Sale{
			BaseModel:     model.BaseModel{ID: id, CreatedAt: baseTime.Add(offset)},
			StockNumber:   stock,
			SalespersonID: salespersonID,
			CustomerName:  customer,
			VehicleType:   model.VehicleNew,
			Status:        model.SaleStatusPending,
			Version:       1,
		},
		SalespersonName: name,
	}
}

type stubClaimStore struct {
	sales      []model.SaleWithOwner
	err        error
	gotStock   string
	gotExclude string
}

func (s *stubClaimStore) FindByStockNumber(_ context.Context, stockNumber, excludeID string) ([]model.SaleWithOwner, error) {
	s.gotStock, s.gotExclude = stockNumber, excludeID
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.SaleWithOwner, 0, len(s.sales))
	for _, sale := range s.sales {
		if sale.StockNumber == stockNumber && sale.ID != excludeID {
			out = append(out, sale)
		}
	}
	return out, nil
}
