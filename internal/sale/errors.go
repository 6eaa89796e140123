package sale

import (
	"errors"

	"github.com/fekuna/omnipos-commission-service/internal/conflict"
)

var (
	ErrInvalidInput    = errors.New("invalid sale input")
	ErrStockBusy       = errors.New("stock number is being claimed, please try again")
	ErrPartnerNotFound = errors.New("partner salesperson not found")
	ErrClaimConflict   = errors.New("stock number already claimed by another salesperson")
)

// ClaimError carries the warning and the failed shared-sale check for a
// rejected claim. errors.Is(err, ErrClaimConflict) holds for it.
type ClaimError struct {
	Warning    string
	Validation conflict.Validation
}

func (e *ClaimError) Error() string {
	return e.Validation.Message
}

func (e *ClaimError) Unwrap() error {
	return ErrClaimConflict
}
