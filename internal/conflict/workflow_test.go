package conflict

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

func newTestWorkflow(sales ...model.SaleWithOwner) *Workflow {
	alerts := Aggregate(sales)
	wf := NewWorkflow(&alerts[0])
	wf.now = func() time.Time { return fixedNow }
	return wf
}

func twoClaims() []model.SaleWithOwner {
	return []model.SaleWithOwner{
		pendingSale("s1", "A100", "sp-1", "Ana", "Kim", 0),
		pendingSale("s2", "A100", "sp-2", "Dana", "Lee", time.Hour),
	}
}

func TestState_Next(t *testing.T) {
	next, err := StatePending.Next(ActionCancelDuplicates)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, next)

	_, err = StatePending.Next(Action("merge"))
	assert.ErrorIs(t, err, ErrUnknownAction)

	for _, terminal := range []State{StateSharedConversion, StateCorrectionApplied, StateCancelled} {
		assert.True(t, terminal.Terminal())
		_, err := terminal.Next(ActionConvertToShared)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	}
}

func TestWorkflow_RequiresNote(t *testing.T) {
	wf := newTestWorkflow(twoClaims()...)

	_, err := wf.Resolve(Resolution{Action: ActionCancelDuplicates, KeepSaleID: "s1", Note: "   ", ActorID: "mgr"})
	assert.ErrorIs(t, err, ErrNoteRequired)
	assert.Equal(t, StatePending, wf.State())
}

func TestWorkflow_RejectsForeignKeepSale(t *testing.T) {
	wf := newTestWorkflow(twoClaims()...)

	_, err := wf.Resolve(Resolution{Action: ActionCancelDuplicates, KeepSaleID: "other", Note: "dup", ActorID: "mgr"})
	assert.ErrorIs(t, err, ErrInvalidKeepSale)
	assert.Equal(t, StatePending, wf.State())
}

func TestWorkflow_SharedConversion(t *testing.T) {
	wf := newTestWorkflow(twoClaims()...)

	plan, err := wf.Resolve(Resolution{Action: ActionConvertToShared, KeepSaleID: "s1", Note: "both worked the deal", ActorID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, StateSharedConversion, wf.State())

	require.Len(t, plan.Updates, 1)
	primary := plan.Updates[0]
	assert.Equal(t, "s1", primary.ID)
	assert.True(t, primary.IsSharedSale)
	require.NotNil(t, primary.PartnerID)
	assert.Equal(t, "sp-2", *primary.PartnerID)
	assert.Equal(t, model.DefaultSplitPercentage, primary.SplitPercentage)
	assert.Equal(t, model.SaleStatusCompleted, primary.Status)
	assert.NoError(t, primary.ValidateShare())

	require.Len(t, plan.Deletes, 1)
	assert.Equal(t, "s2", plan.Deletes[0].ID)

	// Second resolution of the same alert is illegal.
	_, err = wf.Resolve(Resolution{Action: ActionCancelDuplicates, KeepSaleID: "s1", Note: "again", ActorID: "mgr-1"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestWorkflow_SharedConversionNeedsPair(t *testing.T) {
	sales := append(twoClaims(), pendingSale("s3", "A100", "sp-3", "Bo", "Ng", 2*time.Hour))
	wf := newTestWorkflow(sales...)

	_, err := wf.Resolve(Resolution{Action: ActionConvertToShared, KeepSaleID: "s1", Note: "x", ActorID: "mgr"})
	assert.ErrorIs(t, err, ErrSharedNeedsTwoClaims)
	assert.Equal(t, StatePending, wf.State())
}

func TestWorkflow_CorrectionApplied(t *testing.T) {
	sales := append(twoClaims(), pendingSale("s3", "A100", "sp-3", "Bo", "Ng", 2*time.Hour))
	wf := newTestWorkflow(sales...)

	plan, err := wf.Resolve(Resolution{Action: ActionCorrectStock, KeepSaleID: "s2", Note: "typos", ActorID: "mgr"})
	require.NoError(t, err)
	assert.Equal(t, StateCorrectionApplied, wf.State())
	assert.Empty(t, plan.Deletes)
	require.Len(t, plan.Updates, 2)

	suffix := "_CORRECTED_" + "1772463845000"
	for _, s := range plan.Updates {
		assert.NotEqual(t, "s2", s.ID)
		assert.Equal(t, "A100"+suffix, s.StockNumber)
		assert.Equal(t, model.SaleStatusCompleted, s.Status)
	}
}

func TestWorkflow_Cancelled(t *testing.T) {
	wf := newTestWorkflow(twoClaims()...)

	plan, err := wf.Resolve(Resolution{Action: ActionCancelDuplicates, KeepSaleID: "s2", Note: " duplicate entry ", ActorID: "mgr-7"})
	require.NoError(t, err)
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "s1", plan.Updates[0].ID)
	assert.Equal(t, model.SaleStatusCancelled, plan.Updates[0].Status)
	assert.Equal(t, "A100", plan.Updates[0].StockNumber)

	require.NotNil(t, plan.Activity)
	assert.Equal(t, "mgr-7", plan.Activity.ActorID)
	assert.Equal(t, ActivityDoubleClaimResolved, plan.Activity.Action)

	var details resolutionDetails
	require.NoError(t, json.Unmarshal([]byte(plan.Activity.Details), &details))
	assert.Equal(t, "A100", details.StockNumber)
	assert.Equal(t, "cancelled", details.Resolution)
	assert.Equal(t, "duplicate entry", details.Note)
	assert.Equal(t, "s2", details.KeptSaleID)
	assert.Equal(t, []string{"s1"}, details.AffectedSaleIDs)
}
