package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/preference"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type preferenceUseCase struct {
	store    preference.Store
	recorder preference.Recorder
	validate *validator.Validate
	logger   logger.ZapLogger
}

func NewPreferenceUseCase(store preference.Store, recorder preference.Recorder, log logger.ZapLogger) preference.UseCase {
	return &preferenceUseCase{
		store:    store,
		recorder: recorder,
		validate: validator.New(),
		logger:   log,
	}
}

func (uc *preferenceUseCase) GetGoals(ctx context.Context, userID string) (*preference.Goals, error) {
	goals := &preference.Goals{}
	if err := uc.load(ctx, userID, preference.NameGoals, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (uc *preferenceUseCase) SaveGoals(ctx context.Context, userID string, goals *preference.Goals) error {
	return uc.save(ctx, userID, preference.NameGoals, goals)
}

func (uc *preferenceUseCase) GetFilters(ctx context.Context, userID string) (*preference.Filters, error) {
	filters := &preference.Filters{}
	if err := uc.load(ctx, userID, preference.NameFilters, filters); err != nil {
		return nil, err
	}
	return filters, nil
}

func (uc *preferenceUseCase) SaveFilters(ctx context.Context, userID string, filters *preference.Filters) error {
	return uc.save(ctx, userID, preference.NameFilters, filters)
}

// load leaves v untouched when nothing was saved yet.
func (uc *preferenceUseCase) load(ctx context.Context, userID, name string, v interface{}) error {
	if userID == "" {
		return preference.ErrMissingUser
	}

	key := preference.Key(userID, name)
	val, ok, err := uc.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(val), v); err != nil {
		uc.logger.Warn("discarding unreadable preference", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (uc *preferenceUseCase) save(ctx context.Context, userID, name string, v interface{}) error {
	if userID == "" {
		return preference.ErrMissingUser
	}
	if err := uc.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", preference.ErrInvalidPreference, err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	key := preference.Key(userID, name)
	if err := uc.store.Set(ctx, key, data, 0); err != nil {
		uc.logger.Error("failed to save preference", zap.String("key", key), zap.Error(err))
		return err
	}

	if uc.recorder != nil {
		details, err := json.Marshal(map[string]string{"name": name})
		if err != nil {
			return err
		}
		entry := &model.ActivityLog{
			ID:        uuid.New().String(),
			ActorID:   userID,
			Action:    preference.ActivityPreferencesUpdated,
			Details:   string(details),
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.recorder.Record(ctx, entry); err != nil {
			uc.logger.Warn("failed to record preference activity", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
