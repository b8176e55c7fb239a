package domain

import (
	"github.com/shopspring/decimal"
)

// Processing fee modes
const (
	FeeModeFlat       = "flat"
	FeeModePercentage = "percentage"
)

// LoanProduct is one amount range in the tenant's product catalog.
// Ranges are inclusive on both ends; a nil MaxAmount means the product
// is unbounded above. The catalog is maintained elsewhere and read-only
// to the pricing engine.
type LoanProduct struct {
	ID              int64            `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	MinAmount       decimal.Decimal  `json:"min_amount" db:"min_amount"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty" db:"max_amount"`
	RegistrationFee decimal.Decimal  `json:"registration_fee" db:"registration_fee"`
}

// Contains reports whether amount falls inside the product's range.
func (p *LoanProduct) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(p.MinAmount) {
		return false
	}
	if p.MaxAmount != nil && amount.GreaterThan(*p.MaxAmount) {
		return false
	}
	return true
}

// ProductType is a pricing tier attached to a product: duration,
// flat interest rate and fees. InterestRate and a percentage-mode
// ProcessingFeeRate are percentages of principal over the whole tenor,
// not annualized. PenaltyRate is carried through for downstream
// collections tooling and never enters a pricing computation here.
type ProductType struct {
	ID                int64           `json:"id" db:"id"`
	ProductID         int64           `json:"product_id" db:"product_id"`
	Name              string          `json:"name" db:"name"`
	DurationWeeks     int             `json:"duration_weeks" db:"duration_weeks"`
	InterestRate      decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	ProcessingFeeRate decimal.Decimal `json:"processing_fee_rate" db:"processing_fee_rate"`
	ProcessingFeeMode string          `json:"processing_fee_mode" db:"processing_fee_mode"`
	RegistrationFee   decimal.Decimal `json:"registration_fee" db:"registration_fee"`
	PenaltyRate       decimal.Decimal `json:"penalty_rate" db:"penalty_rate"`
}
