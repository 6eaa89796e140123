package preference

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
)

type UseCase interface {
	GetGoals(ctx context.Context, userID string) (*Goals, error)
	SaveGoals(ctx context.Context, userID string, goals *Goals) error
	GetFilters(ctx context.Context, userID string) (*Filters, error)
	SaveFilters(ctx context.Context, userID string, filters *Filters) error
}

// Store is satisfied by *cache.RedisClient. A zero ttl never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recorder is satisfied by activity.Repository.
type Recorder interface {
	Record(ctx context.Context, entry *model.ActivityLog) error
}
