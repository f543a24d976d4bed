package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric shorthand used in Uzbek/Russian finance speech: "80k" is 80 000,
// "1.2 mln" is 1 200 000, "1 milliard" is 1 000 000 000.
var (
	amountRe = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)\s*([a-zа-яё]*)\.?$`)

	multipliers = map[string]int64{
		"":         1,
		"k":        1_000,
		"к":        1_000,
		"ming":     1_000,
		"тыс":      1_000,
		"m":        1_000_000,
		"mln":      1_000_000,
		"млн":      1_000_000,
		"million":  1_000_000,
		"mlrd":     1_000_000_000,
		"млрд":     1_000_000_000,
		"milliard": 1_000_000_000,
		"миллиард": 1_000_000_000,
	}
)

// ParseAmount parses a number with optional shorthand suffix.
// Digit-group spaces are allowed: "100 000" parses as 100000.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	// collapse digit-group separators: "100 000" -> "100000"
	var b strings.Builder
	for i, r := range s {
		if r == ' ' || r == ' ' {
			if i > 0 && i < len(s)-1 && isDigit(s[i-1]) && isDigit(s[i+1]) {
				continue
			}
		}
		b.WriteRune(r)
	}
	s = strings.TrimSpace(b.String())
	s = strings.ReplaceAll(s, " ", "")

	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, errors.New("unparsable amount: " + s)
	}

	num, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
	if err != nil {
		return decimal.Zero, err
	}

	mult, ok := multipliers[m[2]]
	if !ok {
		return decimal.Zero, errors.New("unknown amount suffix: " + m[2])
	}

	return num.Mul(decimal.NewFromInt(mult)), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
