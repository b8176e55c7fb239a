package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekeza/pricing-engine/internal/domain"
)

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	result := &domain.PricingResult{
		ProcessingFee:     dec("200"),
		RegistrationFee:   dec("200"),
		TotalInterest:     dec("1000"),
		TotalPayable:      dec("11000"),
		WeeklyInstallment: dec("2750"),
		DurationWeeks:     4,
	}

	entries := GenerateSchedule(result, start)
	require.Len(t, entries, 4)

	for i, entry := range entries {
		assert.Equal(t, i+1, entry.WeekNumber)
		assert.Equal(t, start.AddDate(0, 0, 7*(i+1)), entry.DueDate)

		if i > 0 {
			assert.True(t, entry.DueDate.After(entries[i-1].DueDate), "due dates must be strictly increasing")
			assert.True(t, entry.ProcessingFeeDue.IsZero(), "processing fee only on week 1")
			assert.True(t, entry.RegistrationFeeDue.IsZero(), "registration fee only on week 1")
		}

		// Fee columns are informational and never enter TotalDue.
		assert.True(t, entry.TotalDue.Equal(dec("2750")))
	}

	assert.True(t, entries[0].ProcessingFeeDue.Equal(dec("200")))
	assert.True(t, entries[0].RegistrationFeeDue.Equal(dec("200")))
}

func TestGenerateSchedule_SingleWeek(t *testing.T) {
	result := &domain.PricingResult{
		TotalInterest:     dec("100"),
		TotalPayable:      dec("1100"),
		WeeklyInstallment: dec("1100"),
		DurationWeeks:     1,
	}

	entries := GenerateSchedule(result, time.Now())
	require.Len(t, entries, 1)
	assert.True(t, entries[0].TotalDue.Equal(dec("1100")))
	assert.True(t, entries[0].InterestPortion.Equal(dec("100")))
}

func TestGenerateSchedule_NoResult(t *testing.T) {
	assert.Nil(t, GenerateSchedule(nil, time.Now()))

	rejected := &domain.PricingResult{
		Errors: []domain.ValidationError{{Code: domain.ErrCodeInvalidAmount}},
	}
	assert.Nil(t, GenerateSchedule(rejected, time.Now()))
}

func TestGenerateSchedule_ReconciliationUnderDrift(t *testing.T) {
	// Principal 1000 at 7% over 7 weeks: weekly installment 152.86
	// drifts by 2 cents over the tenor.
	result := &domain.PricingResult{
		TotalInterest:     dec("70"),
		TotalPayable:      dec("1070"),
		WeeklyInstallment: dec("1070").Div(decimal.NewFromInt(7)).Round(2),
		DurationWeeks:     7,
	}

	entries := GenerateSchedule(result, time.Now())
	require.Len(t, entries, 7)

	sum := decimal.Zero
	for _, entry := range entries {
		sum = sum.Add(entry.TotalDue)
	}
	assert.True(t, sum.Equal(result.TotalPayable), "expected %s, got %s", result.TotalPayable, sum)
}
