package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maqsad/pkg/extract"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer("UZS", []string{"USD", "EUR", "RUB"})
}

func amount(v int64) extract.Amount {
	return extract.Amount{Decimal: decimal.NewFromInt(v)}
}

func TestNormalizeBasic(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(50_000), Kind: extract.KindExpense, Category: "oziq-ovqat", Currency: "UZS", Confidence: 0.9},
		},
		Confidence: 0.9,
	}, "50 ming somsa oldim", testNow)

	require.Len(t, res.Valid, 1)
	d := res.Valid[0]
	assert.Equal(t, extract.KindExpense, d.Kind)
	assert.Equal(t, CategoryFood, d.Category)
	assert.Equal(t, "UZS", d.Currency)
	assert.Equal(t, 0.9, d.Confidence)
	assert.Equal(t, "expense: "+d.Amount.String()+" UZS (oziq-ovqat)", d.Description)
}

func TestNormalizeAmountBounds(t *testing.T) {
	n := newTestNormalizer()

	maxOk := decimal.New(1, 10).Sub(decimal.NewFromInt(1)) // 9 999 999 999
	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: extract.Amount{Decimal: maxOk}, Kind: extract.KindIncome, Currency: "UZS", Confidence: 0.8},
			{Amount: extract.Amount{Decimal: decimal.New(1, 10)}, Kind: extract.KindIncome, Currency: "UZS", Confidence: 0.8},
			{Amount: amount(0), Kind: extract.KindIncome, Currency: "UZS", Confidence: 0.8},
			{Amount: amount(-100), Kind: extract.KindIncome, Currency: "UZS", Confidence: 0.8},
		},
	}, "katta pul", testNow)

	require.Len(t, res.Valid, 1)
	assert.True(t, res.Valid[0].Amount.Equal(maxOk))
}

func TestNormalizeKindWhitelist(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(1000), Kind: "transfer", Currency: "UZS"},
		},
	}, "pul o'tkazdim", testNow)

	assert.Empty(t, res.Valid)
	assert.NotEmpty(t, res.RejectedReason)
}

func TestNormalizeCurrencyFallback(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(100), Kind: extract.KindExpense, Currency: "GBP", Confidence: 0.8},
			{Amount: amount(100), Kind: extract.KindExpense, Currency: "usd", Confidence: 0.8},
		},
	}, "xarajat", testNow)

	require.Len(t, res.Valid, 2)
	assert.Equal(t, "UZS", res.Valid[0].Currency)
	assert.Equal(t, "USD", res.Valid[1].Currency)
}

func TestNormalizeCategoryAlias(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(5_000_000), Kind: extract.KindIncome, Category: "maosh", Currency: "UZS", Confidence: 0.9},
		},
	}, "maosh keldi", testNow)

	require.Len(t, res.Valid, 1)
	assert.Equal(t, CategorySalary, res.Valid[0].Category)
}

func TestNormalizeCategoryFromUtterance(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(60_000), Kind: extract.KindExpense, Category: "nimadir", Currency: "UZS", Confidence: 0.7},
		},
	}, "shashlik yedik kafeda", testNow)

	require.Len(t, res.Valid, 1)
	assert.Equal(t, CategoryFood, res.Valid[0].Category)
}

func TestKindCategoryFix(t *testing.T) {
	n := newTestNormalizer()

	// consumption verb with income/food is an expense
	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(50_000), Kind: extract.KindIncome, Category: "oziq-ovqat", Currency: "UZS", Confidence: 0.8},
		},
	}, "50 ming somsa yedim", testNow)
	require.Len(t, res.Valid, 1)
	assert.Equal(t, extract.KindExpense, res.Valid[0].Kind)

	// inflow verb with expense/salary is an income
	res = n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(5_000_000), Kind: extract.KindExpense, Category: "oylik", Currency: "UZS", Confidence: 0.8},
		},
	}, "oylik keldi 5 mln", testNow)
	require.Len(t, res.Valid, 1)
	assert.Equal(t, extract.KindIncome, res.Valid[0].Kind)
}

func TestNormalizeDebtFields(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{
				Amount: amount(200_000), Kind: extract.KindDebtLent, Category: "boshqa",
				Currency: "UZS", Counterparty: "Alisher", DueDateRaw: "keyingi oy oxirida", Confidence: 0.85,
			},
		},
	}, "Alisherga 200 ming qarz berdim keyingi oy oxirigacha", testNow)

	require.Len(t, res.Valid, 1)
	d := res.Valid[0]
	assert.Equal(t, CategoryDebt, d.Category)
	assert.Equal(t, "Alisher", d.Counterparty)
	require.NotNil(t, d.DueDate)
	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), *d.DueDate)
	assert.Empty(t, d.MissingFields)
}

func TestNormalizeDebtMissingFields(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(200_000), Kind: extract.KindDebtBorrowed, Currency: "UZS", Confidence: 0.6},
		},
	}, "200 ming qarz oldim", testNow)

	require.Len(t, res.Valid, 1)
	d := res.Valid[0]
	assert.Nil(t, d.DueDate)
	assert.ElementsMatch(t, []string{"counterparty", "due_date"}, d.MissingFields)
}

func TestNormalizeConfidenceLift(t *testing.T) {
	n := newTestNormalizer()

	res := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(1_000), Kind: extract.KindExpense, Currency: "UZS"},
		},
		Confidence: 0,
	}, "ming so'm ketdi", testNow)

	require.Len(t, res.Valid, 1)
	assert.Equal(t, liftedConfidence, res.Valid[0].Confidence)
}

func TestNormalizeFixedPoint(t *testing.T) {
	n := newTestNormalizer()

	first := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{Amount: amount(50_000), Kind: extract.KindIncome, Category: "oziq-ovqat", Currency: "GBP", Confidence: 0.8},
		},
	}, "50 ming somsa yedim", testNow)
	require.Len(t, first.Valid, 1)

	// feed the corrected draft back, nothing changes
	d := first.Valid[0]
	second := n.Normalize(extract.Result{
		Candidates: []extract.Candidate{
			{
				Amount: extract.Amount{Decimal: d.Amount}, Kind: d.Kind, Category: d.Category,
				Currency: d.Currency, Description: d.Description, Counterparty: d.Counterparty,
				Confidence: d.Confidence,
			},
		},
	}, "50 ming somsa yedim", testNow)

	require.Len(t, second.Valid, 1)
	assert.Equal(t, d, second.Valid[0])
}
