package pricing

import (
	"github.com/wekeza/pricing-engine/internal/domain"
)

// Classify derives the customer classification from loan history.
// A customer is new iff no prior loan ever reached disbursement or is
// waiting on it; declined and withdrawn applications do not count.
func Classify(priorLoans []*domain.CustomerLoanRecord) string {
	for _, loan := range priorLoans {
		switch loan.Status {
		case domain.CustomerLoanStatusDisbursed, domain.CustomerLoanStatusPendingDisbursement:
			return domain.ClassificationRepeat
		}
	}
	return domain.ClassificationNew
}
