package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
)

// validateEligibility enforces the principal bounds: sign, approved
// limit, minimum bookable floor. Each violated bound is reported as a
// ValidationError naming the bound, so the caller can explain which
// check failed. A zero principal never reaches this function.
func validateEligibility(principal, approvedLimit, minBookable decimal.Decimal) []domain.ValidationError {
	if principal.Sign() < 0 {
		return []domain.ValidationError{{
			Code:    domain.ErrCodeInvalidAmount,
			Message: "requested amount must be a non-negative number",
		}}
	}

	var errs []domain.ValidationError

	if principal.GreaterThan(approvedLimit) {
		errs = append(errs, domain.ValidationError{
			Code: domain.ErrCodeExceedsApprovedLimit,
			Message: fmt.Sprintf("requested amount %s exceeds the approved limit of %s",
				principal.StringFixed(2), approvedLimit.StringFixed(2)),
		})
	}

	if principal.LessThan(minBookable) {
		errs = append(errs, domain.ValidationError{
			Code: domain.ErrCodeBelowMinimumBookable,
			Message: fmt.Sprintf("requested amount %s is below the minimum bookable amount of %s",
				principal.StringFixed(2), minBookable.StringFixed(2)),
		})
	}

	return errs
}
