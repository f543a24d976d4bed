package scheduler

import (
	"time"

	"maqsad/pkg/db"
)

// maxMonthlyDay caps monthly recurrence to avoid month-length anomalies:
// a reminder created on the 31st recurs on the 28th.
const maxMonthlyDay = 28

// NextOccurrence computes the follow-up time for a recurring reminder.
// Returns false for unknown patterns.
func NextOccurrence(t time.Time, pattern string) (time.Time, bool) {
	switch pattern {
	case db.RecurrenceDaily:
		return t.AddDate(0, 0, 1), true
	case db.RecurrenceWeekly:
		return t.AddDate(0, 0, 7), true
	case db.RecurrenceMonthly:
		day := t.Day()
		if day > maxMonthlyDay {
			day = maxMonthlyDay
		}
		next := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), 0, 0, t.Location()).AddDate(0, 1, 0)
		return time.Date(next.Year(), next.Month(), day, t.Hour(), t.Minute(), 0, 0, t.Location()), true
	case db.RecurrenceYearly:
		return t.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
