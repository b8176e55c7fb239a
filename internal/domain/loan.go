package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive = "active"
	LoanStatusClosed = "closed"
)

// Loan is a booked loan: the persisted outcome of a pricing pass plus
// booking metadata stamped by the console (officer/branch), which is
// opaque pass-through data to the engine.
type Loan struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	LoanID            string          `json:"loan_id" db:"loan_id"`
	CustomerID        int64           `json:"customer_id" db:"customer_id"`
	ProductID         int64           `json:"product_id" db:"product_id"`
	TypeID            int64           `json:"type_id" db:"type_id"`
	Principal         decimal.Decimal `json:"principal" db:"principal"`
	InterestRate      decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TotalInterest     decimal.Decimal `json:"total_interest" db:"total_interest"`
	ProcessingFee     decimal.Decimal `json:"processing_fee" db:"processing_fee"`
	RegistrationFee   decimal.Decimal `json:"registration_fee" db:"registration_fee"`
	TotalPayable      decimal.Decimal `json:"total_payable" db:"total_payable"`
	WeeklyInstallment decimal.Decimal `json:"weekly_installment" db:"weekly_installment"`
	DurationWeeks     int             `json:"duration_weeks" db:"duration_weeks"`
	OfficerID         string          `json:"officer_id" db:"officer_id"`
	BranchID          string          `json:"branch_id" db:"branch_id"`
	Status            string          `json:"status" db:"status"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type BookLoanRequest struct {
	LoanID         string           `json:"loan_id" validate:"required"`
	CustomerID     int64            `json:"customer_id" validate:"required,gt=0"`
	Principal      *decimal.Decimal `json:"principal" validate:"required,decimal_gt=0"`
	SelectedTypeID int64            `json:"selected_type_id" validate:"omitempty,gt=0"`
	DurationWeeks  int              `json:"duration_weeks" validate:"omitempty,gt=0"`
	OfficerID      string           `json:"officer_id"`
	BranchID       string           `json:"branch_id"`
}

type BookLoanResponse struct {
	Loan     *Loan           `json:"loan"`
	Result   *PricingResult  `json:"result"`
	Schedule []*LoanSchedule `json:"schedule"`
}
