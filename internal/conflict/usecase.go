package conflict

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/conflict/dto"
	"github.com/fekuna/omnipos-commission-service/internal/model"
)

// Store is the slice of the sale repository the conflict workflow needs.
type Store interface {
	ClaimStore
	FindPendingByTeam(ctx context.Context, managerID string) ([]model.SaleWithOwner, error)
	ApplyChangeSet(ctx context.Context, plan *model.ChangeSet) error
}

// Cache is satisfied by *cache.RedisClient.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

const TeamCachePattern = "conflicts:team:*"

func TeamCacheKey(managerID string) string {
	return "conflicts:team:" + managerID
}

type UseCase interface {
	ListTeamConflicts(ctx context.Context, managerID string) ([]Alert, error)
	GetConflict(ctx context.Context, stockNumber string) (*Alert, error)
	Resolve(ctx context.Context, input *dto.ResolveInput) (*dto.ResolveResult, error)
}
