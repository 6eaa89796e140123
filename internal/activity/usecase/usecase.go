package usecase

import (
	"context"

	"github.com/fekuna/omnipos-commission-service/internal/activity"
	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"go.uber.org/zap"
)

const maxPageSize = 100

type activityUseCase struct {
	repo   activity.Repository
	logger logger.ZapLogger
}

func NewActivityUseCase(repo activity.Repository, log logger.ZapLogger) activity.UseCase {
	return &activityUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *activityUseCase) ListActivity(ctx context.Context, filters *dto.ActivityFilters) ([]dto.ActivityResponse, int, error) {
	if filters.PageSize <= 0 || filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	logs, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list activity", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ActivityResponse, 0, len(logs))
	for i := range logs {
		out = append(out, dto.ToActivityResponse(&logs[i]))
	}
	return out, total, nil
}
