package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/conflict"
	"github.com/fekuna/omnipos-commission-service/internal/conflict/dto"
	"github.com/fekuna/omnipos-commission-service/internal/event"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"go.uber.org/zap"
)

type conflictUseCase struct {
	store     conflict.Store
	cache     conflict.Cache
	publisher event.Publisher
	cacheTTL  time.Duration
	logger    logger.ZapLogger
}

func NewConflictUseCase(store conflict.Store, cache conflict.Cache, publisher event.Publisher, cacheTTL time.Duration, log logger.ZapLogger) conflict.UseCase {
	return &conflictUseCase{
		store:     store,
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		logger:    log,
	}
}

func (uc *conflictUseCase) ListTeamConflicts(ctx context.Context, managerID string) ([]conflict.Alert, error) {
	key := conflict.TeamCacheKey(managerID)

	// 1. Check Cache
	if uc.cache != nil {
		val, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("conflict cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			var alerts []conflict.Alert
			if err := json.Unmarshal([]byte(val), &alerts); err == nil {
				return alerts, nil
			}
		}
	}

	// 2. Re-derive from the store
	sales, err := uc.store.FindPendingByTeam(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("load team pending sales: %w", err)
	}
	alerts := conflict.Aggregate(sales)

	// 3. Set Cache
	if uc.cache != nil {
		if data, err := json.Marshal(alerts); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("conflict cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return alerts, nil
}

// GetConflict looks the alert up by stock number across all teams. Callers
// are gated upstream.
func (uc *conflictUseCase) GetConflict(ctx context.Context, stockNumber string) (*conflict.Alert, error) {
	sales, err := uc.store.FindByStockNumber(ctx, stockNumber, "")
	if err != nil {
		return nil, fmt.Errorf("load claims for %s: %w", stockNumber, err)
	}
	for _, a := range conflict.Aggregate(sales) {
		if a.StockNumber == stockNumber {
			alert := a
			return &alert, nil
		}
	}
	return nil, conflict.ErrAlertNotFound
}

func (uc *conflictUseCase) Resolve(ctx context.Context, input *dto.ResolveInput) (*dto.ResolveResult, error) {
	if strings.TrimSpace(input.Note) == "" {
		return nil, conflict.ErrNoteRequired
	}

	// 1. Re-derive the alert; it may have been resolved meanwhile
	alert, err := uc.GetConflict(ctx, input.StockNumber)
	if err != nil {
		return nil, err
	}

	// 2. Plan
	wf := conflict.NewWorkflow(alert)
	plan, err := wf.Resolve(conflict.Resolution{
		Action:     conflict.Action(input.Action),
		KeepSaleID: input.KeepSaleID,
		Note:       input.Note,
		ActorID:    input.ActorID,
	})
	if err != nil {
		return nil, err
	}

	// 3. Apply atomically
	if err := uc.store.ApplyChangeSet(ctx, plan); err != nil {
		uc.logger.Error("failed to apply conflict resolution",
			zap.String("stock_number", input.StockNumber),
			zap.String("action", input.Action),
			zap.Error(err),
		)
		return nil, fmt.Errorf("apply resolution for %s: %w", input.StockNumber, err)
	}

	uc.logger.Info("double claim resolved",
		zap.String("stock_number", input.StockNumber),
		zap.String("state", wf.State().String()),
		zap.String("actor_id", input.ActorID),
	)

	// 4. Invalidate and notify
	if uc.cache != nil {
		if err := uc.cache.DeletePattern(ctx, conflict.TeamCachePattern); err != nil {
			uc.logger.Warn("conflict cache invalidation failed", zap.Error(err))
		}
	}

	result := &dto.ResolveResult{
		StockNumber:    input.StockNumber,
		State:          wf.State().String(),
		UpdatedSales:   make([]model.Sale, 0, len(plan.Updates)),
		DeletedSaleIDs: make([]string, 0, len(plan.Deletes)),
	}
	for _, s := range plan.Updates {
		result.UpdatedSales = append(result.UpdatedSales, *s)
		event.PublishSale(ctx, uc.publisher, uc.logger, model.EventSaleChanged, s)
	}
	for _, s := range plan.Deletes {
		result.DeletedSaleIDs = append(result.DeletedSaleIDs, s.ID)
		event.PublishSale(ctx, uc.publisher, uc.logger, model.EventSaleDeleted, s)
	}

	return result, nil
}
