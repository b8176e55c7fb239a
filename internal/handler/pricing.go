package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
	customError "github.com/wekeza/pricing-engine/pkg/errors"
	"github.com/wekeza/pricing-engine/pkg/response"
)

// PricingService is the application surface the handler needs.
type PricingService interface {
	Quote(ctx context.Context, request *domain.QuoteRequest) (*domain.QuoteResponse, error)
	BookLoan(ctx context.Context, request *domain.BookLoanRequest) (*domain.BookLoanResponse, error)
	GetSchedule(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error)
}

type PricingHandler struct {
	service   PricingService
	validator *validator.Validate
}

func NewPricingHandler(svc PricingService) *PricingHandler {
	v := validator.New()
	registerDecimalValidations(v)

	return &PricingHandler{
		service:   svc,
		validator: v,
	}
}

// registerDecimalValidations wires decimal.Decimal into the validator:
// decimal_gt=N compares the field against a decimal parameter.
func registerDecimalValidations(v *validator.Validate) {
	_ = v.RegisterValidation("decimal_gt", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return d.GreaterThan(bound)
	})
}

// Quote handles POST /api/v1/pricing/quote. The response carries the
// pricing result and schedule preview; a null result means no amount
// was entered, which is not an error.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var request domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Request validation failed", err)
		return
	}

	quote, err := h.service.Quote(r.Context(), &request)
	if err != nil {
		h.writeBusinessError(w, err, nil)
		return
	}

	response.Success(w, quote)
}

// BookLoan handles POST /api/v1/loans. Booking is blocked while the
// pricing result carries any validation code.
func (h *PricingHandler) BookLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.BookLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Request validation failed", err)
		return
	}

	booked, err := h.service.BookLoan(r.Context(), &request)
	if err != nil {
		var details interface{}
		if booked != nil && booked.Result != nil {
			details = booked.Result.Errors
		}
		h.writeBusinessError(w, err, details)
		return
	}

	response.Created(w, booked)
}

// GetSchedule handles GET /api/v1/loans/{loanId}/schedule.
func (h *PricingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]
	if loanID == "" {
		response.BadRequest(w, "loanId is required", nil)
		return
	}

	schedules, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		h.writeBusinessError(w, err, nil)
		return
	}

	response.Success(w, &domain.ScheduleResponse{
		LoanID:   loanID,
		Schedule: schedules,
	})
}

func (h *PricingHandler) writeBusinessError(w http.ResponseWriter, err error, details interface{}) {
	var bizErr *customError.BusinessError
	if !errors.As(err, &bizErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch bizErr.Code {
	case customError.ErrCodeCustomerNotFound, customError.ErrCodeLoanNotFound:
		response.NotFound(w, bizErr.Message)
	case customError.ErrCodeLoanAlreadyExists:
		response.Conflict(w, bizErr.Message, bizErr)
	case customError.ErrCodeQuoteRejected:
		response.UnprocessableEntity(w, bizErr.Message, bizErr, details)
	case customError.ErrCodeEmptyAmount:
		response.BadRequest(w, bizErr.Message, bizErr)
	default:
		response.InternalServerError(w, bizErr.Message, bizErr)
	}
}
