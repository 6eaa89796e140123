package preference

import (
	"errors"
	"fmt"
)

const (
	NameGoals   = "goals"
	NameFilters = "filters"
)

const ActivityPreferencesUpdated = "Preferences Updated"

var (
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidPreference = errors.New("invalid preference value")
	ErrMissingUser       = errors.New("user id is required")
)

// Goals are a salesperson's monthly targets shown on the dashboard.
type Goals struct {
	MonthlyCommission float64 `json:"monthly_commission" validate:"gte=0"`
	MonthlyUnits      int     `json:"monthly_units" validate:"gte=0"`
}

// Filters are the saved sale list filters.
type Filters struct {
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	VehicleType string `json:"vehicle_type,omitempty" validate:"omitempty,oneof=new used"`
	SharedOnly  bool   `json:"shared_only"`
	PageSize    int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=100"`
}

// Key scopes a preference to its owner.
func Key(userID, name string) string {
	return fmt.Sprintf("prefs:%s:%s", userID, name)
}
