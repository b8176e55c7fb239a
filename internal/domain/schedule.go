package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
	ScheduleStatusOverdue = "overdue"
)

// LoanSchedule is one persisted installment of a booked loan. Fee
// columns mirror the RepaymentScheduleEntry the engine produced: they
// are due alongside week 1 but excluded from DueAmount.
type LoanSchedule struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	LoanID             string          `json:"loan_id" db:"loan_id"`
	WeekNumber         int             `json:"week_number" db:"week_number"`
	DueAmount          decimal.Decimal `json:"due_amount" db:"due_amount"`
	InterestPortion    decimal.Decimal `json:"interest_portion" db:"interest_portion"`
	ProcessingFeeDue   decimal.Decimal `json:"processing_fee_due" db:"processing_fee_due"`
	RegistrationFeeDue decimal.Decimal `json:"registration_fee_due" db:"registration_fee_due"`
	DueDate            time.Time       `json:"due_date" db:"due_date"`
	Status             string          `json:"status" db:"status"` // pending, paid, overdue
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

type ScheduleResponse struct {
	LoanID   string          `json:"loan_id"`
	Schedule []*LoanSchedule `json:"schedule"`
}
