package conflict

import (
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/i18n"
)

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNotShared       Reason = "not_shared"
	ReasonNoPartner       Reason = "no_partner"
	ReasonPartnerMismatch Reason = "partner_mismatch"
)

type Validation struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidateSharedSale decides whether a sale may be saved against an existing
// claim. Without a conflicting sale it is always valid; with one, the sale
// must be shared with the original claimant as partner.
func ValidateSharedSale(isSharedSale bool, partnerID string, conflicting *model.SaleWithOwner) Validation {
	return ValidateSharedSaleLang("en", isSharedSale, partnerID, conflicting)
}

func ValidateSharedSaleLang(lang string, isSharedSale bool, partnerID string, conflicting *model.SaleWithOwner) Validation {
	if conflicting == nil {
		return Validation{Valid: true}
	}

	switch {
	case !isSharedSale:
		return invalid(lang, ReasonNotShared, conflicting)
	case partnerID == "":
		return invalid(lang, ReasonNoPartner, conflicting)
	case partnerID != conflicting.SalespersonID:
		return invalid(lang, ReasonPartnerMismatch, conflicting)
	}
	return Validation{Valid: true}
}

func invalid(lang string, reason Reason, s *model.SaleWithOwner) Validation {
	name := s.SalespersonName
	if name == "" {
		name = s.SalespersonID
	}
	return Validation{
		Reason:  reason,
		Message: i18n.T(lang, "shared_sale."+string(reason), map[string]interface{}{"Salesperson": name}),
	}
}
