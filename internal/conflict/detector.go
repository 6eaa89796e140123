package conflict

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/i18n"
)

// ClaimStore is the read side of the sale store used for claim checks.
type ClaimStore interface {
	FindByStockNumber(ctx context.Context, stockNumber, excludeID string) ([]model.SaleWithOwner, error)
}

type CheckResult struct {
	HasConflict     bool                 `json:"has_conflict"`
	Warning         string               `json:"warning,omitempty"`
	ConflictingSale *model.SaleWithOwner `json:"conflicting_sale,omitempty"`
}

type Detector struct {
	store ClaimStore
	lang  string
}

func NewDetector(store ClaimStore, lang string) *Detector {
	if lang == "" {
		lang = "en"
	}
	return &Detector{store: store, lang: lang}
}

// CheckConflict reports whether stockNumber is already claimed by someone
// other than salespersonID. excludeSaleID lets a sale be edited in place.
func (d *Detector) CheckConflict(ctx context.Context, stockNumber, salespersonID, excludeSaleID string) (*CheckResult, error) {
	return d.CheckConflictLang(ctx, stockNumber, salespersonID, excludeSaleID, d.lang)
}

func (d *Detector) CheckConflictLang(ctx context.Context, stockNumber, salespersonID, excludeSaleID, lang string) (*CheckResult, error) {
	if stockNumber == "" {
		return &CheckResult{}, nil
	}

	sales, err := d.store.FindByStockNumber(ctx, stockNumber, excludeSaleID)
	if err != nil {
		return nil, fmt.Errorf("query stock number %s: %w", stockNumber, err)
	}

	for i := range sales {
		s := sales[i]
		if s.SalespersonID == salespersonID {
			continue
		}
		return &CheckResult{
			HasConflict:     true,
			Warning:         conflictWarning(lang, &s),
			ConflictingSale: &s,
		}, nil
	}
	return &CheckResult{}, nil
}

func conflictWarning(lang string, s *model.SaleWithOwner) string {
	name := s.SalespersonName
	if name == "" {
		name = s.SalespersonID
	}
	return i18n.T(lang, "conflict.warning", map[string]interface{}{
		"StockNumber": s.StockNumber,
		"Salesperson": name,
		"Customer":    s.CustomerName,
	})
}
