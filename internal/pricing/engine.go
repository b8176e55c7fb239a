package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
)

// DefaultMinBookableAmount is the absolute floor below which a loan
// cannot be booked, in currency units.
var DefaultMinBookableAmount = decimal.NewFromInt(1000)

// Engine runs one full pricing pass: validate the amount, match a
// product, classify the customer, resolve a tier, compute the pricing
// and expand the repayment schedule. It holds no state between calls
// beyond the catalog snapshot it was built with, performs no I/O, and
// is safe to re-run from scratch on every input change: identical
// inputs always produce identical outputs.
type Engine struct {
	catalog     *Catalog
	minBookable decimal.Decimal
}

// NewEngine builds an engine over a catalog snapshot. A non-positive
// minBookable falls back to DefaultMinBookableAmount.
func NewEngine(catalog *Catalog, minBookable decimal.Decimal) *Engine {
	if minBookable.Sign() <= 0 {
		minBookable = DefaultMinBookableAmount
	}
	return &Engine{
		catalog:     catalog,
		minBookable: minBookable,
	}
}

// Quote prices a request. A zero principal means "nothing entered":
// the engine returns no result and no error, which is distinct from a
// rejected amount. Any violated bound comes back as error codes on the
// result; the result never carries monetary figures alongside errors,
// and booking must be blocked while any code is present.
func (e *Engine) Quote(req domain.PricingRequest, startDate time.Time) (*domain.PricingResult, []*domain.RepaymentScheduleEntry) {
	if req.Principal.IsZero() {
		return nil, nil
	}

	classification := Classify(req.PriorLoans)

	if errs := validateEligibility(req.Principal, req.ApprovedLimit, e.minBookable); len(errs) > 0 {
		return &domain.PricingResult{
			IsNewCustomer: classification == domain.ClassificationNew,
			Errors:        errs,
		}, nil
	}

	product, ok := e.catalog.MatchProduct(req.Principal)
	if !ok {
		return &domain.PricingResult{
			IsNewCustomer: classification == domain.ClassificationNew,
			Errors: []domain.ValidationError{{
				Code:    domain.ErrCodeNoProductMatch,
				Message: "no loan product covers the requested amount",
			}},
		}, nil
	}

	typ, ok := e.catalog.SelectType(product.ID, req.SelectedTypeID, req.DurationWeeks)
	if !ok {
		return &domain.PricingResult{
			ProductID:     product.ID,
			ProductName:   product.Name,
			IsNewCustomer: classification == domain.ClassificationNew,
			Errors: []domain.ValidationError{{
				Code:    domain.ErrCodeNoPricingTierAvailable,
				Message: "the matched product has no pricing tier configured",
			}},
		}, nil
	}

	result := calculate(req.Principal, product, typ, classification)
	schedule := GenerateSchedule(result, startDate)

	return result, schedule
}
