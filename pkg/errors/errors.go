package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanAlreadyExists = errors.New("loan already exists")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrQuoteRejected     = errors.New("pricing quote rejected")
	ErrEmptyAmount       = errors.New("no amount entered")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound      = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists = "LOAN_ALREADY_EXISTS"
	ErrCodeCustomerNotFound  = "CUSTOMER_NOT_FOUND"
	ErrCodeQuoteRejected     = "QUOTE_REJECTED"
	ErrCodeEmptyAmount       = "EMPTY_AMOUNT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with ID %s already exists", loanID),
		ErrLoanAlreadyExists,
	)
}

func WrapCustomerNotFound(customerID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("Customer with ID %d not found", customerID),
		ErrCustomerNotFound,
	)
}

// WrapQuoteRejected signals that a booking attempt was blocked by
// pricing validation. The violated bounds travel on the PricingResult,
// not on this error.
func WrapQuoteRejected(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeQuoteRejected,
		fmt.Sprintf("Pricing for loan %s was rejected, booking is blocked", loanID),
		ErrQuoteRejected,
	)
}

func WrapEmptyAmount(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmptyAmount,
		fmt.Sprintf("Loan %s has no requested amount to price", loanID),
		ErrEmptyAmount,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
