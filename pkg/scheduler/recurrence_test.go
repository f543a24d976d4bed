package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maqsad/pkg/db"
)

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		pattern string
		want    time.Time
	}{
		{db.RecurrenceDaily, time.Date(2026, time.March, 16, 9, 30, 0, 0, time.UTC)},
		{db.RecurrenceWeekly, time.Date(2026, time.March, 22, 9, 30, 0, 0, time.UTC)},
		{db.RecurrenceMonthly, time.Date(2026, time.April, 15, 9, 30, 0, 0, time.UTC)},
		{db.RecurrenceYearly, time.Date(2027, time.March, 15, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, ok := NextOccurrence(base, tt.pattern)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNextOccurrenceMonthlyDayCap(t *testing.T) {
	// the 31st recurs on the 28th, so every month has a slot
	base := time.Date(2026, time.January, 31, 18, 0, 0, 0, time.UTC)

	got, ok := NextOccurrence(base, db.RecurrenceMonthly)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 28, 18, 0, 0, 0, time.UTC), got)

	// and from then on stays on the 28th
	got, ok = NextOccurrence(got, db.RecurrenceMonthly)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 28, 18, 0, 0, 0, time.UTC), got)
}

func TestNextOccurrenceUnknownPattern(t *testing.T) {
	_, ok := NextOccurrence(time.Now(), "fortnightly")
	assert.False(t, ok)
}
