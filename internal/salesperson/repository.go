package salesperson

import (
	"context"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Salesperson, error)
	// FindTeam returns the manager followed by their direct reports, by name.
	FindTeam(ctx context.Context, managerID string) ([]model.Salesperson, error)
}
