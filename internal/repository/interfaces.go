package repository

import (
	"context"
	"time"

	"github.com/wekeza/pricing-engine/internal/domain"
)

// ProductRepository reads the tenant's loan product catalog. The
// catalog is administered elsewhere; this side only reads.
type ProductRepository interface {
	// ListProducts returns all loan products in catalog order
	ListProducts(ctx context.Context) ([]*domain.LoanProduct, error)

	// ListProductTypes returns all pricing tiers across products
	ListProductTypes(ctx context.Context) ([]*domain.ProductType, error)
}

// CustomerRepository reads customer records and loan history.
type CustomerRepository interface {
	// GetByID retrieves a customer with their approved credit limit
	GetByID(ctx context.Context, customerID int64) (*domain.Customer, error)

	// GetLoanHistory returns the customer's prior loan records
	GetLoanHistory(ctx context.Context, customerID int64) ([]*domain.CustomerLoanRecord, error)

	// AppendLoanRecord records a freshly booked loan in the history
	AppendLoanRecord(ctx context.Context, record *domain.CustomerLoanRecord) error
}

// LoanRepository persists booked loans and their schedules.
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// CreateSchedule creates loan schedule entries
	CreateSchedule(ctx context.Context, schedules []*domain.LoanSchedule) error

	// GetScheduleByLoanID retrieves loan schedule by loan ID
	GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error)

	// MarkSchedulesOverdue flips pending entries past their due date to
	// overdue and returns how many rows changed
	MarkSchedulesOverdue(ctx context.Context, asOf time.Time) (int64, error)
}
