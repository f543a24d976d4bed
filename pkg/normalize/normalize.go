package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"maqsad/pkg/extract"
)

// maxAmount is the sanity cap: 10^10 and above is dropped.
var maxAmount = decimal.New(1, 10)

// liftedConfidence replaces an overall confidence of zero when candidates exist.
const liftedConfidence = 0.3

// Normalizer is the deterministic corrector between extraction and commit.
type Normalizer struct {
	baseCurrency string
	currencies   map[string]bool
}

// NewNormalizer builds a validator for the base currency plus the foreign set.
func NewNormalizer(baseCurrency string, foreign []string) *Normalizer {
	currencies := map[string]bool{baseCurrency: true}
	for _, c := range foreign {
		currencies[strings.ToUpper(c)] = true
	}

	return &Normalizer{
		baseCurrency: baseCurrency,
		currencies:   currencies,
	}
}

// Normalize applies the validation rules in order and returns commit-ready
// drafts. Running it on its own output changes nothing.
func (n *Normalizer) Normalize(res extract.Result, utterance string, now time.Time) Result {
	overall := res.Confidence
	if overall == 0 && len(res.Candidates) > 0 {
		overall = liftedConfidence
	}

	var valid []Draft
	for _, c := range res.Candidates {
		// amount sanity
		if !c.Amount.IsPositive() || c.Amount.GreaterThanOrEqual(maxAmount) {
			continue
		}

		// kind whitelist
		if !extract.KnownKinds[c.Kind] {
			continue
		}

		// currency whitelist, unknown falls back to base
		currency := strings.ToUpper(c.Currency)
		if !n.currencies[currency] {
			currency = n.baseCurrency
		}

		category := canonicalCategory(c.Category, utterance)
		kind := fixKindCategory(c.Kind, category, utterance)

		d := Draft{
			Amount:       c.Amount.Decimal.Round(2),
			Kind:         kind,
			Category:     category,
			Currency:     currency,
			Description:  strings.TrimSpace(c.Description),
			Counterparty: strings.TrimSpace(c.Counterparty),
			Confidence:   c.Confidence,
		}

		if d.IsDebt() {
			d.Category = CategoryDebt
			if t, ok := extract.ResolveDatePhrase(c.DueDateRaw, now); ok {
				d.DueDate = &t
			}
			if d.Counterparty == "" {
				d.MissingFields = append(d.MissingFields, "counterparty")
			}
			if d.DueDate == nil {
				d.MissingFields = append(d.MissingFields, "due_date")
			}
		}

		if d.Description == "" {
			d.Description = fmt.Sprintf("%s: %s %s (%s)", d.Kind, d.Amount.String(), d.Currency, d.Category)
		}

		if d.Confidence == 0 {
			d.Confidence = overall
		}

		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return Result{RejectedReason: "no valid transactions"}
	}

	return Result{Valid: valid}
}

// fixKindCategory is the validator's sole semantic override: a consumption
// utterance tagged income/food becomes an expense, an inflow utterance tagged
// expense/salary becomes an income.
func fixKindCategory(kind extract.Kind, category, utterance string) extract.Kind {
	lower := strings.ToLower(utterance)

	if kind == extract.KindIncome && category == CategoryFood && containsAny(lower, consumptionVerbs) {
		return extract.KindExpense
	}

	if kind == extract.KindExpense && category == CategorySalary && containsAny(lower, inflowVerbs) {
		return extract.KindIncome
	}

	return kind
}
