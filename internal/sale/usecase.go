package sale

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/commission"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/sale/dto"
)

type UseCase interface {
	CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	UpdateSale(ctx context.Context, input *dto.UpdateSaleInput) (*model.Sale, error)
	UpdateSaleStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Sale, error)

	// Stock number check while a sale is being entered
	CheckStockNumber(ctx context.Context, input *dto.CheckStockInput) (*dto.StockCheckResult, error)

	// Dashboard aggregates
	CommissionSummary(ctx context.Context, salespersonID string) (*commission.Summary, error)
	TeamCommissionSummary(ctx context.Context, managerID string) ([]commission.Summary, error)
}

// Locker is satisfied by *cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// SalespersonLookup resolves partners and team members.
type SalespersonLookup interface {
	FindByID(ctx context.Context, id string) (*model.Salesperson, error)
	FindTeam(ctx context.Context, managerID string) ([]model.Salesperson, error)
}
