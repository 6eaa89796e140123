package conflict

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SingleConflict(t *testing.T) {
	sales := []model.SaleWithOwner{
		pendingSale("s2", "A100", "sp-2", "Dana", "Lee", time.Hour),
		pendingSale("s1", "A100", "sp-1", "Ana", "Kim", 0),
		pendingSale("s3", "B200", "sp-1", "Ana", "Park", 2*time.Hour),
	}

	alerts := Aggregate(sales)

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, "A100", a.StockNumber)
	assert.Equal(t, PriorityHigh, a.Priority)
	assert.Equal(t, baseTime, a.CreatedAt)
	require.Len(t, a.Sales, 2)
	assert.Equal(t, "s1", a.Sales[0].ID)
	assert.Equal(t, "s2", a.Sales[1].ID)
	assert.Equal(t, []string{"sp-1", "sp-2"}, a.Claimants())
}

func TestAggregate_IgnoresNonClaims(t *testing.T) {
	cancelled := pendingSale("s4", "C300", "sp-2", "Dana", "Lee", 0)
	cancelled.Status = model.SaleStatusCancelled

	sales := []model.SaleWithOwner{
		// Same salesperson twice is not a double claim.
		pendingSale("s1", "A100", "sp-1", "Ana", "Kim", 0),
		pendingSale("s2", "A100", "sp-1", "Ana", "Kim", time.Minute),
		// Blank stock numbers never group.
		pendingSale("s5", "", "sp-1", "Ana", "Kim", 0),
		pendingSale("s6", "", "sp-2", "Dana", "Lee", 0),
		pendingSale("s3", "C300", "sp-1", "Ana", "Kim", 0),
		cancelled,
	}

	assert.Empty(t, Aggregate(sales))
	assert.Empty(t, Aggregate(nil))
}

func TestAggregate_OrdersAlertsByAge(t *testing.T) {
	sales := []model.SaleWithOwner{
		pendingSale("s1", "Z900", "sp-1", "Ana", "Kim", 3*time.Hour),
		pendingSale("s2", "Z900", "sp-2", "Dana", "Lee", 4*time.Hour),
		pendingSale("s3", "A100", "sp-3", "Bo", "Ng", 5*time.Hour),
		pendingSale("s4", "A100", "sp-1", "Ana", "Ro", time.Hour),
		pendingSale("s5", "A100", "sp-2", "Dana", "Su", 2*time.Hour),
	}

	alerts := Aggregate(sales)

	require.Len(t, alerts, 2)
	assert.Equal(t, "A100", alerts[0].StockNumber)
	assert.Len(t, alerts[0].Sales, 3)
	assert.Equal(t, baseTime.Add(time.Hour), alerts[0].CreatedAt)
	assert.Equal(t, "Z900", alerts[1].StockNumber)
}
