package activity

import (
	"context"

	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
)

type UseCase interface {
	ListActivity(ctx context.Context, filters *dto.ActivityFilters) ([]dto.ActivityResponse, int, error)
}
