package sale

import (
	"context"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/sale/dto"
)

type Repository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id string) (*model.Sale, error)
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)

	// Update and Delete compare sale.Version and fail with
	// model.ErrVersionConflict when the row moved on.
	Update(ctx context.Context, sale *model.Sale) error
	Delete(ctx context.Context, sale *model.Sale) error

	// Claim lookups. Cancelled sales never count as claims.
	FindByStockNumber(ctx context.Context, stockNumber, excludeID string) ([]model.SaleWithOwner, error)
	FindPendingByTeam(ctx context.Context, managerID string) ([]model.SaleWithOwner, error)

	// Transaction support
	ApplyChangeSet(ctx context.Context, plan *model.ChangeSet) error
}
