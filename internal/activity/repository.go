package activity

import (
	"context"

	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
	"github.com/fekuna/omnipos-commission-service/internal/model"
)

// Repository is the audit trail. Entries describing sale writes are stored in
// the same transaction as the writes, see sale.Repository.ApplyChangeSet;
// Record is for standalone entries.
type Repository interface {
	Record(ctx context.Context, entry *model.ActivityLog) error
	FindAll(ctx context.Context, filters *dto.ActivityFilters) ([]model.ActivityLog, int, error)
}
