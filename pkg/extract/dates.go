package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date phrases arrive either resolved by the model ("2026-12-31") or as the
// original speech fragment ("keyingi yil 31-dekabr"). Resolution is
// deterministic against the caller's clock.

var (
	relativeRe = regexp.MustCompile(`(\d+)\s*(kun|hafta|oy|yil)dan\s+keyin`)
	dayMonthRe = regexp.MustCompile(`(\d{1,2})[-\s]*(yanvar|fevral|mart|aprel|may|iyun|iyul|avgust|sentabr|sentyabr|oktabr|oktyabr|noyabr|dekabr)[a-z]*`)
	nextYearRe = regexp.MustCompile(`keyingi\s+yil`)
	endNextMo  = regexp.MustCompile(`keyingi\s+oy\s+oxiri`)

	monthNumbers = map[string]time.Month{
		"yanvar": time.January, "fevral": time.February, "mart": time.March,
		"aprel": time.April, "may": time.May, "iyun": time.June,
		"iyul": time.July, "avgust": time.August,
		"sentabr": time.September, "sentyabr": time.September,
		"oktabr": time.October, "oktyabr": time.October,
		"noyabr": time.November, "dekabr": time.December,
	}
)

// ResolveDatePhrase converts a date phrase to a concrete date.
// Returns false when the phrase carries no recognizable date.
func ResolveDatePhrase(phrase string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"2006-01-02", "02.01.2006", "02.01.06"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}

	// "2 haftadan keyin", "10 kundan keyin", "3 oydan keyin"
	if m := relativeRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		base := midnight(now)
		switch m[2] {
		case "kun":
			return base.AddDate(0, 0, n), true
		case "hafta":
			return base.AddDate(0, 0, 7*n), true
		case "oy":
			return base.AddDate(0, n, 0), true
		case "yil":
			return base.AddDate(n, 0, 0), true
		}
	}

	// "keyingi oy oxirida" — last day of next month
	if endNextMo.MatchString(s) {
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfThis.AddDate(0, 2, -1), true
	}

	// "31-dekabr", optionally prefixed with "keyingi yil"
	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNumbers[m[2]]

		if nextYearRe.MatchString(s) {
			return validDate(now.Year()+1, month, day, now.Location())
		}

		// bare day-month: the next occurrence that has not passed yet
		t, ok := validDate(now.Year(), month, day, now.Location())
		if !ok {
			return time.Time{}, false
		}
		if t.Before(midnight(now)) {
			return validDate(now.Year()+1, month, day, now.Location())
		}
		return t, true
	}

	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
