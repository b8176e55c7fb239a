package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// calculate prices a validated principal against a matched product and
// a chosen tier. Interest is flat over the whole tenor: principal *
// rate / 100, never compounded. Fees are billed alongside week 1 and
// excluded from the amortization base, so totalPayable is principal
// plus interest only.
//
// Arithmetic runs at full decimal precision; only the fields placed on
// the result are rounded to 2 decimal places.
func calculate(principal decimal.Decimal, product *domain.LoanProduct, typ *domain.ProductType, classification string) *domain.PricingResult {
	registrationFee := decimal.Zero
	if classification == domain.ClassificationNew {
		registrationFee = product.RegistrationFee
	}

	var processingFee decimal.Decimal
	switch typ.ProcessingFeeMode {
	case domain.FeeModePercentage:
		processingFee = principal.Mul(typ.ProcessingFeeRate).Div(oneHundred)
	default: // flat: the rate is the fee amount
		processingFee = typ.ProcessingFeeRate
	}

	totalInterest := principal.Mul(typ.InterestRate).Div(oneHundred)
	totalPayable := principal.Add(totalInterest).Round(2)
	weeklyInstallment := totalPayable.Div(decimal.NewFromInt(int64(typ.DurationWeeks))).Round(2)

	return &domain.PricingResult{
		ProductID:         product.ID,
		ProductName:       product.Name,
		TypeID:            typ.ID,
		TypeName:          typ.Name,
		IsNewCustomer:     classification == domain.ClassificationNew,
		ProcessingFee:     processingFee.Round(2),
		RegistrationFee:   registrationFee.Round(2),
		InterestRate:      typ.InterestRate,
		TotalInterest:     totalInterest.Round(2),
		TotalPayable:      totalPayable,
		WeeklyInstallment: weeklyInstallment,
		DurationWeeks:     typ.DurationWeeks,
	}
}
