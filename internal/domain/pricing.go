package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Validation error codes reported on a PricingResult. These are data,
// not Go errors: the engine always completes and the caller blocks
// booking while any code is present.
const (
	ErrCodeInvalidAmount          = "INVALID_AMOUNT"
	ErrCodeExceedsApprovedLimit   = "EXCEEDS_APPROVED_LIMIT"
	ErrCodeBelowMinimumBookable   = "BELOW_MINIMUM_BOOKABLE"
	ErrCodeNoProductMatch         = "NO_PRODUCT_MATCH"
	ErrCodeNoPricingTierAvailable = "NO_PRICING_TIER_AVAILABLE"
)

// ValidationError names one violated bound in a human-readable way.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PricingRequest is the full input of one pricing pass. SelectedTypeID
// and DurationWeeks are optional: a zero SelectedTypeID asks the engine
// to auto-select a tier, and DurationWeeks is the currently held
// duration the auto-selection tries to preserve.
type PricingRequest struct {
	Principal      decimal.Decimal
	ApprovedLimit  decimal.Decimal
	PriorLoans     []*CustomerLoanRecord
	SelectedTypeID int64
	DurationWeeks  int
}

// PricingResult is the outcome of one pricing pass. When Errors is
// non-empty the monetary fields are zero and no schedule is produced.
type PricingResult struct {
	ProductID         int64             `json:"product_id"`
	ProductName       string            `json:"product_name"`
	TypeID            int64             `json:"type_id"`
	TypeName          string            `json:"type_name"`
	IsNewCustomer     bool              `json:"is_new_customer"`
	ProcessingFee     decimal.Decimal   `json:"processing_fee"`
	RegistrationFee   decimal.Decimal   `json:"registration_fee"`
	InterestRate      decimal.Decimal   `json:"interest_rate"`
	TotalInterest     decimal.Decimal   `json:"total_interest"`
	TotalPayable      decimal.Decimal   `json:"total_payable"`
	WeeklyInstallment decimal.Decimal   `json:"weekly_installment"`
	DurationWeeks     int               `json:"duration_weeks"`
	Errors            []ValidationError `json:"errors,omitempty"`
}

// HasErrors reports whether the result must block booking.
func (r *PricingResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// RepaymentScheduleEntry is one weekly installment of a priced loan.
// Fee columns are informational: they are billed alongside week 1 but
// never added into TotalDue, which amortizes principal plus interest
// only.
type RepaymentScheduleEntry struct {
	WeekNumber         int             `json:"week_number"`
	DueDate            time.Time       `json:"due_date"`
	InterestPortion    decimal.Decimal `json:"interest_portion"`
	ProcessingFeeDue   decimal.Decimal `json:"processing_fee_due"`
	RegistrationFeeDue decimal.Decimal `json:"registration_fee_due"`
	TotalDue           decimal.Decimal `json:"total_due"`
}

// DTOs for the HTTP surface

// QuoteRequest deliberately does not bound the principal: a negative
// or out-of-range amount must flow through to the engine and come back
// as validation codes on the result, not as a transport-level 400.
type QuoteRequest struct {
	CustomerID     int64            `json:"customer_id" validate:"required,gt=0"`
	Principal      *decimal.Decimal `json:"principal"`
	SelectedTypeID int64            `json:"selected_type_id" validate:"omitempty,gt=0"`
	DurationWeeks  int              `json:"duration_weeks" validate:"omitempty,gt=0"`
}

type QuoteResponse struct {
	Result   *PricingResult            `json:"result"`
	Schedule []*RepaymentScheduleEntry `json:"schedule,omitempty"`
}
