package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wekeza/pricing-engine/internal/domain"
	"github.com/wekeza/pricing-engine/pkg/utils"
)

// GenerateSchedule expands a priced result into exactly durationWeeks
// weekly installments. Week 1 falls 7 days after startDate. The even
// per-week split of interest and installment can leave a residual cent
// after rounding; the residual is carried into the final week so that
// sum(TotalDue) reconciles with TotalPayable exactly.
func GenerateSchedule(result *domain.PricingResult, startDate time.Time) []*domain.RepaymentScheduleEntry {
	if result == nil || result.HasErrors() || result.DurationWeeks <= 0 {
		return nil
	}

	weeks := result.DurationWeeks
	weeksDec := decimal.NewFromInt(int64(weeks))
	interestPerWeek := result.TotalInterest.Div(weeksDec).Round(2)

	entries := make([]*domain.RepaymentScheduleEntry, 0, weeks)
	for week := 1; week <= weeks; week++ {
		entry := &domain.RepaymentScheduleEntry{
			WeekNumber:      week,
			DueDate:         utils.CalculateDueDate(startDate, week),
			InterestPortion: interestPerWeek,
			TotalDue:        result.WeeklyInstallment,
		}

		if week == 1 {
			entry.ProcessingFeeDue = result.ProcessingFee
			entry.RegistrationFeeDue = result.RegistrationFee
		}

		if week == weeks {
			// Carry the rounding remainder so the totals reconcile.
			paidBefore := result.WeeklyInstallment.Mul(weeksDec.Sub(decimal.NewFromInt(1)))
			entry.TotalDue = result.TotalPayable.Sub(paidBefore)

			accruedBefore := interestPerWeek.Mul(weeksDec.Sub(decimal.NewFromInt(1)))
			entry.InterestPortion = result.TotalInterest.Sub(accruedBefore)
		}

		entries = append(entries, entry)
	}

	return entries
}
