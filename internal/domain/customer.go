package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prior-loan statuses that matter to classification. Anything else
// (declined, withdrawn, ...) does not make a customer a repeat borrower.
const (
	CustomerLoanStatusDisbursed           = "disbursed"
	CustomerLoanStatusPendingDisbursement = "pending_disbursement"
)

// Customer classification derived from loan history.
const (
	ClassificationNew    = "new"
	ClassificationRepeat = "repeat"
)

// Customer carries the identity and the approved credit limit supplied
// by upstream underwriting. The limit is read-only here.
type Customer struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	ApprovedLimit decimal.Decimal `json:"approved_limit" db:"approved_limit"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// CustomerLoanRecord is one row of a customer's loan history. Only the
// status is consulted by the engine.
type CustomerLoanRecord struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
