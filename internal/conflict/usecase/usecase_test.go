package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/conflict"
	"github.com/fekuna/omnipos-commission-service/internal/conflict/dto"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeStore struct {
	sales    []model.SaleWithOwner
	teamErr  error
	applyErr error
	applied  []*model.ChangeSet
}

func (f *fakeStore) FindByStockNumber(_ context.Context, stockNumber, excludeID string) ([]model.SaleWithOwner, error) {
	var out []model.SaleWithOwner
	for _, s := range f.sales {
		if s.StockNumber == stockNumber && s.ID != excludeID && s.Status != model.SaleStatusCancelled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) FindPendingByTeam(_ context.Context, _ string) ([]model.SaleWithOwner, error) {
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	return f.sales, nil
}

func (f *fakeStore) ApplyChangeSet(_ context.Context, plan *model.ChangeSet) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, plan)
	return nil
}

type fakeCache struct {
	data     map[string]string
	sets     int
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = string(value)
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	c.data = map[string]string{}
	return nil
}

type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, key string, _ []byte) error {
	p.keys = append(p.keys, key)
	return nil
}

func sale(id, stock, salespersonID, name string, offset time.Duration) model.SaleWithOwner {
	return model.SaleWithOwner{
		Sale: model.Sale{
			BaseModel:     model.BaseModel{ID: id, CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Add(offset)},
			StockNumber:   stock,
			SalespersonID: salespersonID,
			CustomerName:  "Customer " + id,
			Status:        model.SaleStatusPending,
			Version:       1,
		},
		SalespersonName: name,
	}
}

func teamSales() []model.SaleWithOwner {
	return []model.SaleWithOwner{
		sale("s1", "A100", "sp-1", "Ana", 0),
		sale("s2", "A100", "sp-2", "Dana", time.Hour),
		sale("s3", "B200", "sp-3", "Bo", 2*time.Hour),
	}
}

func TestListTeamConflicts_CachesDerivedAlerts(t *testing.T) {
	store := &fakeStore{sales: teamSales()}
	cache := newFakeCache()
	uc := NewConflictUseCase(store, cache, nil, time.Minute, zaptest.NewLogger(t))

	alerts, err := uc.ListTeamConflicts(context.Background(), "mgr-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "A100", alerts[0].StockNumber)
	assert.Len(t, alerts[0].Sales, 2)
	assert.Equal(t, 1, cache.sets)

	// Served from cache even if the store now fails.
	store.teamErr = errors.New("down")
	cached, err := uc.ListTeamConflicts(context.Background(), "mgr-1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "s1", cached[0].Sales[0].ID)
	assert.Equal(t, conflict.PriorityHigh, cached[0].Priority)
}

func TestGetConflict_ByStockNumberOnly(t *testing.T) {
	store := &fakeStore{sales: teamSales()}
	uc := NewConflictUseCase(store, nil, nil, time.Minute, zaptest.NewLogger(t))

	alert, err := uc.GetConflict(context.Background(), "A100")
	require.NoError(t, err)
	assert.Equal(t, "A100", alert.StockNumber)
	require.Len(t, alert.Sales, 2)
	assert.Equal(t, "sp-1", alert.Sales[0].SalespersonID)
	assert.Equal(t, "sp-2", alert.Sales[1].SalespersonID)

	_, err = uc.GetConflict(context.Background(), "B200")
	assert.ErrorIs(t, err, conflict.ErrAlertNotFound)
}

func TestResolve_CancelDuplicates(t *testing.T) {
	store := &fakeStore{sales: teamSales()}
	cache := newFakeCache()
	pub := &fakePublisher{}
	uc := NewConflictUseCase(store, cache, pub, time.Minute, zaptest.NewLogger(t))

	res, err := uc.Resolve(context.Background(), &dto.ResolveInput{
		StockNumber: "A100",
		Action:      string(conflict.ActionCancelDuplicates),
		KeepSaleID:  "s1",
		Note:        "entered twice",
		ActorID:     "mgr-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", res.State)
	require.Len(t, res.UpdatedSales, 1)
	assert.Equal(t, "s2", res.UpdatedSales[0].ID)
	assert.Equal(t, model.SaleStatusCancelled, res.UpdatedSales[0].Status)

	require.Len(t, store.applied, 1)
	assert.Equal(t, conflict.ActivityDoubleClaimResolved, store.applied[0].Activity.Action)
	assert.Equal(t, []string{conflict.TeamCachePattern}, cache.patterns)
	assert.Equal(t, []string{"A100"}, pub.keys)
}

func TestResolve_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("note required before touching the store", func(t *testing.T) {
		store := &fakeStore{sales: teamSales()}
		uc := NewConflictUseCase(store, nil, nil, time.Minute, zaptest.NewLogger(t))
		_, err := uc.Resolve(ctx, &dto.ResolveInput{StockNumber: "A100", Action: string(conflict.ActionCancelDuplicates), KeepSaleID: "s1"})
		assert.ErrorIs(t, err, conflict.ErrNoteRequired)
		assert.Empty(t, store.applied)
	})

	t.Run("no open conflict", func(t *testing.T) {
		store := &fakeStore{sales: teamSales()}
		uc := NewConflictUseCase(store, nil, nil, time.Minute, zaptest.NewLogger(t))
		_, err := uc.Resolve(ctx, &dto.ResolveInput{StockNumber: "B200", Action: string(conflict.ActionCancelDuplicates), KeepSaleID: "s3", Note: "n"})
		assert.ErrorIs(t, err, conflict.ErrAlertNotFound)
	})

	t.Run("store rejects the plan", func(t *testing.T) {
		store := &fakeStore{sales: teamSales(), applyErr: model.ErrVersionConflict}
		pub := &fakePublisher{}
		uc := NewConflictUseCase(store, nil, pub, time.Minute, zaptest.NewLogger(t))
		_, err := uc.Resolve(ctx, &dto.ResolveInput{StockNumber: "A100", Action: string(conflict.ActionConvertToShared), KeepSaleID: "s2", Note: "n"})
		assert.ErrorIs(t, err, model.ErrVersionConflict)
		assert.Empty(t, pub.keys)
	})
}
