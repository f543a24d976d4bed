package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDatePhrase(t *testing.T) {
	// tuesday afternoon
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		phrase string
		want   time.Time
	}{
		{"2026-12-31", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"15.04.2026", time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)},
		{"10 kundan keyin", time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{"2 haftadan keyin", time.Date(2026, time.March, 24, 0, 0, 0, 0, time.UTC)},
		{"3 oydan keyin", time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{"1 yildan keyin", time.Date(2027, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{"keyingi oy oxirida", time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)},
		{"31-dekabr", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"keyingi yil 31-dekabr", time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC)},
		// already passed this year, rolls to the next one
		{"5-yanvar", time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC)},
		// today counts as not passed
		{"10-mart", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := ResolveDatePhrase(tt.phrase, now)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestResolveDatePhraseUnrecognized(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	for _, phrase := range []string{"", "tez orada", "qachondir", "31-fevral"} {
		_, ok := ResolveDatePhrase(phrase, now)
		assert.False(t, ok, "phrase %q", phrase)
	}
}
