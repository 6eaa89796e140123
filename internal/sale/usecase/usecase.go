package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/commission"
	"github.com/fekuna/omnipos-commission-service/internal/conflict"
	"github.com/fekuna/omnipos-commission-service/internal/event"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/sale"
	"github.com/fekuna/omnipos-commission-service/internal/sale/dto"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ActivitySaleStatusUpdated = "Sale Status Updated"

const (
	lockAttempts = 3
	lockWait     = 100 * time.Millisecond
	lockTTL      = 5 * time.Second
)

type saleUseCase struct {
	repo      sale.Repository
	detector  *conflict.Detector
	locker    sale.Locker
	people    sale.SalespersonLookup
	publisher event.Publisher
	cache     conflict.Cache
	validate  *validator.Validate
	lang      string
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewSaleUseCase(repo sale.Repository, locker sale.Locker, people sale.SalespersonLookup, publisher event.Publisher, cache conflict.Cache, lang string, log logger.ZapLogger) sale.UseCase {
	if lang == "" {
		lang = "en"
	}
	return &saleUseCase{
		repo:      repo,
		detector:  conflict.NewDetector(repo, lang),
		locker:    locker,
		people:    people,
		publisher: publisher,
		cache:     cache,
		validate:  validator.New(),
		lang:      lang,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *saleUseCase) CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", sale.ErrInvalidInput, err)
	}

	now := uc.now().UTC()
	s := &model.Sale{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StockNumber:      strings.TrimSpace(input.StockNumber),
		SalespersonID:    input.SalespersonID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		VehicleType:      model.VehicleType(input.VehicleType),
		SalePrice:        input.SalePrice,
		AccessoriesValue: input.AccessoriesValue,
		WarrantyPrice:    input.WarrantyPrice,
		WarrantyCost:     input.WarrantyCost,
		ServicePrice:     input.ServicePrice,
		ServiceCost:      input.ServiceCost,
		SpiffBonus:       input.SpiffBonus,
		Status:           model.SaleStatusPending,
		Version:          1,
	}
	setShare(s, input.IsSharedSale, input.PartnerID, input.SplitPercentage)

	if err := uc.checkShare(ctx, s); err != nil {
		return nil, err
	}

	// 1. Lock the stock number for the check-then-write window
	release, err := uc.lockStock(ctx, s.StockNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	// 2. Claim check
	if err := uc.checkClaim(ctx, s, "", langOr(input.Lang, uc.lang)); err != nil {
		return nil, err
	}

	// 3. Persist
	commission.Apply(s)
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create sale", zap.String("stock_number", s.StockNumber), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("sale created",
		zap.String("sale_id", s.ID),
		zap.String("stock_number", s.StockNumber),
		zap.String("commission_total", s.Total.String()),
	)
	uc.invalidateConflicts(ctx)
	event.PublishSale(ctx, uc.publisher, uc.logger, model.EventSaleChanged, s)
	return s, nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, model.ErrSaleNotFound
	}
	return s, nil
}

func (uc *saleUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *saleUseCase) UpdateSale(ctx context.Context, input *dto.UpdateSaleInput) (*model.Sale, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", sale.ErrInvalidInput, err)
	}

	s, err := uc.GetSale(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s.Status == model.SaleStatusCancelled {
		return nil, model.ErrSaleCancelled
	}
	if s.Version != input.Version {
		return nil, model.ErrVersionConflict
	}

	s.StockNumber = strings.TrimSpace(input.StockNumber)
	s.CustomerName = strings.TrimSpace(input.CustomerName)
	s.VehicleType = model.VehicleType(input.VehicleType)
	s.SalePrice = input.SalePrice
	s.AccessoriesValue = input.AccessoriesValue
	s.WarrantyPrice = input.WarrantyPrice
	s.WarrantyCost = input.WarrantyCost
	s.ServicePrice = input.ServicePrice
	s.ServiceCost = input.ServiceCost
	s.SpiffBonus = input.SpiffBonus
	s.UpdatedAt = uc.now().UTC()
	setShare(s, input.IsSharedSale, input.PartnerID, input.SplitPercentage)

	if err := uc.checkShare(ctx, s); err != nil {
		return nil, err
	}

	release, err := uc.lockStock(ctx, s.StockNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := uc.checkClaim(ctx, s, s.ID, langOr(input.Lang, uc.lang)); err != nil {
		return nil, err
	}

	commission.Apply(s)
	if err := uc.repo.Update(ctx, s); err != nil {
		uc.logger.Error("failed to update sale", zap.String("sale_id", s.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("sale updated",
		zap.String("sale_id", s.ID),
		zap.String("actor_id", input.ActorID),
		zap.Int("version", s.Version),
	)
	uc.invalidateConflicts(ctx)
	event.PublishSale(ctx, uc.publisher, uc.logger, model.EventSaleChanged, s)
	return s, nil
}

type statusDetails struct {
	SaleID string           `json:"sale_id"`
	From   model.SaleStatus `json:"from"`
	To     model.SaleStatus `json:"to"`
}

func (uc *saleUseCase) UpdateSaleStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.Sale, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", sale.ErrInvalidInput, err)
	}

	s, err := uc.GetSale(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s.Status == model.SaleStatusCancelled {
		return nil, model.ErrSaleCancelled
	}
	if s.Version != input.Version {
		return nil, model.ErrVersionConflict
	}

	from, to := s.Status, model.SaleStatus(input.Status)
	if from == to {
		return s, nil
	}

	now := uc.now().UTC()
	s.Status = to
	s.UpdatedAt = now

	details, err := json.Marshal(statusDetails{SaleID: s.ID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	// Status and audit entry land in one transaction.
	changes := &model.ChangeSet{
		StockNumber: s.StockNumber,
		Updates:     []*model.Sale{s},
		Activity: &model.ActivityLog{
			ID:        uuid.New().String(),
			ActorID:   input.ActorID,
			Action:    ActivitySaleStatusUpdated,
			Details:   string(details),
			CreatedAt: now,
		},
	}
	if err := uc.repo.ApplyChangeSet(ctx, changes); err != nil {
		uc.logger.Error("failed to update sale status", zap.String("sale_id", s.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("sale status updated",
		zap.String("sale_id", s.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	uc.invalidateConflicts(ctx)
	event.PublishSale(ctx, uc.publisher, uc.logger, model.EventSaleChanged, s)
	return s, nil
}

func (uc *saleUseCase) CheckStockNumber(ctx context.Context, input *dto.CheckStockInput) (*dto.StockCheckResult, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", sale.ErrInvalidInput, err)
	}

	lang := langOr(input.Lang, uc.lang)
	res, err := uc.detector.CheckConflictLang(ctx, strings.TrimSpace(input.StockNumber), input.SalespersonID, input.ExcludeSaleID, lang)
	if err != nil {
		return nil, err
	}

	return &dto.StockCheckResult{
		CheckResult: *res,
		SharedSale:  conflict.ValidateSharedSaleLang(lang, input.IsSharedSale, input.PartnerID, res.ConflictingSale),
	}, nil
}

func (uc *saleUseCase) CommissionSummary(ctx context.Context, salespersonID string) (*commission.Summary, error) {
	sales, _, err := uc.repo.FindAll(ctx, &dto.SaleFilters{ParticipantID: salespersonID})
	if err != nil {
		return nil, err
	}
	sum := commission.Summarize(salespersonID, sales)
	return &sum, nil
}

func (uc *saleUseCase) TeamCommissionSummary(ctx context.Context, managerID string) ([]commission.Summary, error) {
	team, err := uc.people.FindTeam(ctx, managerID)
	if err != nil {
		return nil, err
	}

	out := make([]commission.Summary, 0, len(team))
	for _, member := range team {
		sum, err := uc.CommissionSummary(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("summary for %s: %w", member.ID, err)
		}
		out = append(out, *sum)
	}
	return out, nil
}

// setShare applies the sharing fields. The own share defaults to an even
// split when the sale is shared without one.
func setShare(s *model.Sale, shared bool, partnerID string, split int) {
	s.IsSharedSale = shared
	if !shared {
		s.PartnerID = nil
		s.SplitPercentage = 100
		return
	}
	if partnerID != "" {
		p := partnerID
		s.PartnerID = &p
	} else {
		s.PartnerID = nil
	}
	if split == 0 {
		split = model.DefaultSplitPercentage
	}
	s.SplitPercentage = split
}

func (uc *saleUseCase) checkShare(ctx context.Context, s *model.Sale) error {
	if err := s.ValidateShare(); err != nil {
		return fmt.Errorf("%w: %w", sale.ErrInvalidInput, err)
	}
	if !s.IsSharedSale || uc.people == nil {
		return nil
	}
	partner, err := uc.people.FindByID(ctx, *s.PartnerID)
	if err != nil {
		return err
	}
	if partner == nil {
		return sale.ErrPartnerNotFound
	}
	return nil
}

// checkClaim rejects s when another salesperson holds its stock number and s
// is not shared with them.
func (uc *saleUseCase) checkClaim(ctx context.Context, s *model.Sale, excludeID, lang string) error {
	res, err := uc.detector.CheckConflictLang(ctx, s.StockNumber, s.SalespersonID, excludeID, lang)
	if err != nil {
		return err
	}
	if !res.HasConflict {
		return nil
	}

	partnerID := ""
	if s.PartnerID != nil {
		partnerID = *s.PartnerID
	}
	v := conflict.ValidateSharedSaleLang(lang, s.IsSharedSale, partnerID, res.ConflictingSale)
	if v.Valid {
		return nil
	}

	uc.logger.Warn("stock number claim rejected",
		zap.String("stock_number", s.StockNumber),
		zap.String("salesperson_id", s.SalespersonID),
		zap.String("held_by", res.ConflictingSale.SalespersonID),
		zap.String("reason", string(v.Reason)),
	)
	return &sale.ClaimError{Warning: res.Warning, Validation: v}
}

// lockStock serializes claims on one stock number. The returned func
// releases the lock.
func (uc *saleUseCase) lockStock(ctx context.Context, stockNumber string) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	lockKey := "lock:stock:" + stockNumber
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.String("key", lockKey), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockWait)
	}
	if !acquired {
		return nil, sale.ErrStockBusy
	}

	return func() {
		if err := uc.locker.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release lock", zap.String("key", lockKey), zap.Error(err))
		}
	}, nil
}

// invalidateConflicts drops every cached team conflict set so the next read
// re-derives it from committed sales.
func (uc *saleUseCase) invalidateConflicts(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, conflict.TeamCachePattern); err != nil {
		uc.logger.Warn("conflict cache invalidation failed", zap.Error(err))
	}
}

func langOr(lang, fallback string) string {
	if lang == "" {
		return fallback
	}
	return lang
}
