package utils

import (
	"time"
)

// CalculateDueDate returns the due date for a schedule week. Week 1 is
// due 7 days after the start date, week 2 after 14 days, and so on;
// installments never fall on the start date itself.
func CalculateDueDate(startDate time.Time, weekNumber int) time.Time {
	return startDate.AddDate(0, 0, 7*weekNumber)
}

// WeeksBetween returns the 1-based week a date falls in, counted from
// a start date. Dates before the start clamp to week 1.
func WeeksBetween(startDate time.Time, at time.Time) int {
	days := int(at.Sub(startDate).Hours() / 24)
	week := (days / 7) + 1
	if week < 1 {
		return 1
	}
	return week
}
