package conflict

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/google/uuid"
)

const ActivityDoubleClaimResolved = "Double Claim Resolved"

var (
	ErrNoteRequired         = errors.New("a resolution note is required")
	ErrUnknownAction        = errors.New("unknown resolution action")
	ErrIllegalTransition    = errors.New("conflict is already resolved")
	ErrInvalidKeepSale      = errors.New("kept sale is not part of this conflict")
	ErrSharedNeedsTwoClaims = errors.New("shared conversion needs exactly two claims by two salespeople")
	ErrAlertNotFound        = errors.New("no open conflict for this stock number")
)

type State int

const (
	StatePending State = iota
	StateSharedConversion
	StateCorrectionApplied
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSharedConversion:
		return "shared_conversion"
	case StateCorrectionApplied:
		return "correction_applied"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s != StatePending
}

type Action string

const (
	ActionConvertToShared  Action = "convert_to_shared"
	ActionCorrectStock     Action = "correct_stock_numbers"
	ActionCancelDuplicates Action = "cancel_duplicates"
)

// transitions lists every legal move. Terminal states have no entry.
var transitions = map[State]map[Action]State{
	StatePending: {
		ActionConvertToShared:  StateSharedConversion,
		ActionCorrectStock:     StateCorrectionApplied,
		ActionCancelDuplicates: StateCancelled,
	},
}

// Next returns the state reached by applying a from s.
func (s State) Next(a Action) (State, error) {
	moves, ok := transitions[s]
	if !ok {
		return s, ErrIllegalTransition
	}
	next, ok := moves[a]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	return next, nil
}

// Resolution is the manager's decision for one alert.
type Resolution struct {
	Action     Action
	KeepSaleID string
	Note       string
	ActorID    string
}

// Workflow resolves a single alert. It only plans writes; the caller applies
// the returned plan atomically.
type Workflow struct {
	alert *Alert
	state State
	now   func() time.Time
}

func NewWorkflow(alert *Alert) *Workflow {
	return &Workflow{alert: alert, state: StatePending, now: time.Now}
}

func (w *Workflow) State() State {
	return w.state
}

// Resolve validates r, moves the workflow to its terminal state and returns
// the writes that realize it. On error the state is unchanged.
func (w *Workflow) Resolve(r Resolution) (*model.ChangeSet, error) {
	note := strings.TrimSpace(r.Note)
	if note == "" {
		return nil, ErrNoteRequired
	}

	next, err := w.state.Next(r.Action)
	if err != nil {
		return nil, err
	}

	keep := w.alert.sale(r.KeepSaleID)
	if keep == nil {
		return nil, ErrInvalidKeepSale
	}

	now := w.now().UTC()
	plan := &model.ChangeSet{StockNumber: w.alert.StockNumber}
	others := w.others(keep.ID)

	switch next {
	case StateSharedConversion:
		if len(w.alert.Sales) != 2 || others[0].SalespersonID == keep.SalespersonID {
			return nil, ErrSharedNeedsTwoClaims
		}
		primary := keep.Sale
		partner := others[0].SalespersonID
		primary.IsSharedSale = true
		primary.PartnerID = &partner
		if primary.SplitPercentage < 1 || primary.SplitPercentage > 99 {
			primary.SplitPercentage = model.DefaultSplitPercentage
		}
		primary.Status = model.SaleStatusCompleted
		primary.UpdatedAt = now
		plan.Updates = append(plan.Updates, &primary)

		dup := others[0].Sale
		plan.Deletes = append(plan.Deletes, &dup)

	case StateCorrectionApplied:
		suffix := fmt.Sprintf("_CORRECTED_%d", now.UnixMilli())
		for _, o := range others {
			s := o.Sale
			s.StockNumber += suffix
			s.Status = model.SaleStatusCompleted
			s.UpdatedAt = now
			plan.Updates = append(plan.Updates, &s)
		}

	case StateCancelled:
		for _, o := range others {
			s := o.Sale
			s.Status = model.SaleStatusCancelled
			s.UpdatedAt = now
			plan.Updates = append(plan.Updates, &s)
		}
	}

	activity, err := w.activity(r, next, note, keep.ID, others, now)
	if err != nil {
		return nil, err
	}
	plan.Activity = activity

	w.state = next
	return plan, nil
}

func (w *Workflow) others(keepID string) []model.SaleWithOwner {
	out := make([]model.SaleWithOwner, 0, len(w.alert.Sales)-1)
	for _, s := range w.alert.Sales {
		if s.ID != keepID {
			out = append(out, s)
		}
	}
	return out
}

type resolutionDetails struct {
	StockNumber     string   `json:"stock_number"`
	Resolution      string   `json:"resolution"`
	Note            string   `json:"note"`
	KeptSaleID      string   `json:"kept_sale_id"`
	AffectedSaleIDs []string `json:"affected_sale_ids"`
}

func (w *Workflow) activity(r Resolution, next State, note, keepID string, others []model.SaleWithOwner, now time.Time) (*model.ActivityLog, error) {
	affected := make([]string, 0, len(others))
	for _, o := range others {
		affected = append(affected, o.ID)
	}

	details, err := json.Marshal(resolutionDetails{
		StockNumber:     w.alert.StockNumber,
		Resolution:      next.String(),
		Note:            note,
		KeptSaleID:      keepID,
		AffectedSaleIDs: affected,
	})
	if err != nil {
		return nil, err
	}

	return &model.ActivityLog{
		ID:        uuid.NewString(),
		ActorID:   r.ActorID,
		Action:    ActivityDoubleClaimResolved,
		Details:   string(details),
		CreatedAt: now,
	}, nil
}
