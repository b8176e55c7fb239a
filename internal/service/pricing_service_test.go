package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wekeza/pricing-engine/internal/config"
	"github.com/wekeza/pricing-engine/internal/domain"
	customError "github.com/wekeza/pricing-engine/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			MinBookableAmount: "1000",
			CatalogCacheTTL:   "15m",
		},
	}
}

func catalogProducts() []*domain.LoanProduct {
	max := dec("50000")
	return []*domain.LoanProduct{
		{ID: 1, Name: "Micro", MinAmount: dec("1000"), MaxAmount: &max, RegistrationFee: dec("200")},
	}
}

func catalogTypes() []*domain.ProductType {
	return []*domain.ProductType{
		{ID: 11, ProductID: 1, Name: "Micro 4wk", DurationWeeks: 4,
			InterestRate: dec("10"), ProcessingFeeRate: dec("2"), ProcessingFeeMode: domain.FeeModePercentage},
	}
}

// newTestService wires a service against mocks and no Redis; the
// catalog read then always falls through to the repositories.
func newTestService(productRepo *MockProductRepository, customerRepo *MockCustomerRepository, loanRepo *MockLoanRepository) *PricingService {
	return NewPricingService(productRepo, customerRepo, loanRepo, nil, testConfig())
}

func expectCatalogLoad(productRepo *MockProductRepository) {
	productRepo.On("ListProducts", mock.Anything).Return(catalogProducts(), nil)
	productRepo.On("ListProductTypes", mock.Anything).Return(catalogTypes(), nil)
}

func TestQuote_Success(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customer := &domain.Customer{ID: 7, Name: "Amina", ApprovedLimit: dec("20000")}
	customerRepo.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	customerRepo.On("GetLoanHistory", mock.Anything, int64(7)).Return([]*domain.CustomerLoanRecord{}, nil)
	expectCatalogLoad(productRepo)

	quote, err := svc.Quote(context.Background(), &domain.QuoteRequest{
		CustomerID: 7,
		Principal:  decPtr("10000"),
	})

	require.NoError(t, err)
	require.NotNil(t, quote.Result)
	assert.False(t, quote.Result.HasErrors())
	assert.True(t, quote.Result.TotalPayable.Equal(dec("11000")))
	assert.True(t, quote.Result.WeeklyInstallment.Equal(dec("2750")))
	assert.True(t, quote.Result.RegistrationFee.Equal(dec("200")))
	assert.True(t, quote.Result.IsNewCustomer)
	assert.Len(t, quote.Schedule, 4)

	customerRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestQuote_EmptyPrincipal(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customer := &domain.Customer{ID: 7, ApprovedLimit: dec("20000")}
	customerRepo.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	customerRepo.On("GetLoanHistory", mock.Anything, int64(7)).Return([]*domain.CustomerLoanRecord{}, nil)
	expectCatalogLoad(productRepo)

	quote, err := svc.Quote(context.Background(), &domain.QuoteRequest{CustomerID: 7})

	require.NoError(t, err)
	assert.Nil(t, quote.Result, "nothing entered is not an error and produces no result")
	assert.Nil(t, quote.Schedule)
}

func TestQuote_CustomerNotFound(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customerRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, sql.ErrNoRows)

	_, err := svc.Quote(context.Background(), &domain.QuoteRequest{
		CustomerID: 404,
		Principal:  decPtr("10000"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrCustomerNotFound))
}

func TestBookLoan_Success(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customer := &domain.Customer{ID: 7, ApprovedLimit: dec("20000")}
	customerRepo.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	customerRepo.On("GetLoanHistory", mock.Anything, int64(7)).Return([]*domain.CustomerLoanRecord{}, nil)
	expectCatalogLoad(productRepo)

	loanRepo.On("GetByLoanID", mock.Anything, "LN-001").Return(nil, sql.ErrNoRows)
	loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.LoanID == "LN-001" &&
			loan.Status == domain.LoanStatusActive &&
			loan.TotalPayable.Equal(dec("11000"))
	})).Return(nil)
	loanRepo.On("CreateSchedule", mock.Anything, mock.MatchedBy(func(schedules []*domain.LoanSchedule) bool {
		if len(schedules) != 4 {
			return false
		}
		// fees land on week 1 only, as pending entries
		return schedules[0].RegistrationFeeDue.Equal(dec("200")) &&
			schedules[1].RegistrationFeeDue.IsZero() &&
			schedules[0].Status == domain.ScheduleStatusPending
	})).Return(nil)
	customerRepo.On("AppendLoanRecord", mock.Anything, mock.MatchedBy(func(record *domain.CustomerLoanRecord) bool {
		return record.CustomerID == 7 && record.Status == domain.CustomerLoanStatusPendingDisbursement
	})).Return(nil)

	booked, err := svc.BookLoan(context.Background(), &domain.BookLoanRequest{
		LoanID:     "LN-001",
		CustomerID: 7,
		Principal:  decPtr("10000"),
		OfficerID:  "OFF-9",
		BranchID:   "BR-2",
	})

	require.NoError(t, err)
	require.NotNil(t, booked.Loan)
	assert.Equal(t, "OFF-9", booked.Loan.OfficerID)
	assert.Equal(t, "BR-2", booked.Loan.BranchID)
	assert.Len(t, booked.Schedule, 4)

	loanRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
}

func TestBookLoan_BlockedByPricingErrors(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customer := &domain.Customer{ID: 7, ApprovedLimit: dec("5000")}
	customerRepo.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	customerRepo.On("GetLoanHistory", mock.Anything, int64(7)).Return([]*domain.CustomerLoanRecord{}, nil)
	expectCatalogLoad(productRepo)

	loanRepo.On("GetByLoanID", mock.Anything, "LN-002").Return(nil, sql.ErrNoRows)

	booked, err := svc.BookLoan(context.Background(), &domain.BookLoanRequest{
		LoanID:     "LN-002",
		CustomerID: 7,
		Principal:  decPtr("10000"), // over the approved limit
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrQuoteRejected))
	require.NotNil(t, booked)
	require.NotNil(t, booked.Result)
	require.Len(t, booked.Result.Errors, 1)
	assert.Equal(t, domain.ErrCodeExceedsApprovedLimit, booked.Result.Errors[0].Code)

	loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookLoan_DuplicateLoanID(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	existing := &domain.Loan{LoanID: "LN-003"}
	loanRepo.On("GetByLoanID", mock.Anything, "LN-003").Return(existing, nil)

	_, err := svc.BookLoan(context.Background(), &domain.BookLoanRequest{
		LoanID:     "LN-003",
		CustomerID: 7,
		Principal:  decPtr("10000"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrLoanAlreadyExists))
}

func TestBookLoan_RepeatCustomerSkipsRegistrationFee(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	customer := &domain.Customer{ID: 7, ApprovedLimit: dec("20000")}
	history := []*domain.CustomerLoanRecord{{Status: domain.CustomerLoanStatusDisbursed}}
	customerRepo.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	customerRepo.On("GetLoanHistory", mock.Anything, int64(7)).Return(history, nil)
	expectCatalogLoad(productRepo)

	loanRepo.On("GetByLoanID", mock.Anything, "LN-004").Return(nil, sql.ErrNoRows)
	loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.RegistrationFee.IsZero()
	})).Return(nil)
	loanRepo.On("CreateSchedule", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("AppendLoanRecord", mock.Anything, mock.Anything).Return(nil)

	booked, err := svc.BookLoan(context.Background(), &domain.BookLoanRequest{
		LoanID:     "LN-004",
		CustomerID: 7,
		Principal:  decPtr("10000"),
	})

	require.NoError(t, err)
	assert.False(t, booked.Result.IsNewCustomer)
	assert.True(t, booked.Result.RegistrationFee.IsZero())
}

func TestMarkOverdueSchedules(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	loanRepo.On("MarkSchedulesOverdue", mock.Anything, mock.Anything).Return(int64(3), nil)

	updated, err := svc.MarkOverdueSchedules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	loanRepo.AssertExpectations(t)
}

func TestGetSchedule_LoanNotFound(t *testing.T) {
	productRepo := &MockProductRepository{}
	customerRepo := &MockCustomerRepository{}
	loanRepo := &MockLoanRepository{}
	svc := newTestService(productRepo, customerRepo, loanRepo)

	loanRepo.On("GetByLoanID", mock.Anything, "NOPE").Return(nil, sql.ErrNoRows)

	_, err := svc.GetSchedule(context.Background(), "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrLoanNotFound))
}
