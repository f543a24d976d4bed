package telegram

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"maqsad/pkg/extract"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"500", "UZS", "500 UZS"},
		{"50000", "uzs", "50 000 UZS"},
		{"1250000", "UZS", "1 250 000 UZS"},
		{"1000000000", "UZS", "1 000 000 000 UZS"},
		{"-450000", "UZS", "-450 000 UZS"},
		{"12800.5", "usd", "12 800.5 USD"},
	}

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			got := formatMoney(decimal.RequireFromString(c.amount), c.currency)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "💵 Kirim", kindLabel(extract.KindIncome))
	assert.Equal(t, "💸 Chiqim", kindLabel(extract.KindExpense))
	assert.Equal(t, "🤝 Qarz berildi", kindLabel(extract.KindDebtLent))
	assert.Equal(t, "📥 Qarz olindi", kindLabel(extract.KindDebtBorrowed))
}

func TestCommitSummary(t *testing.T) {
	assert.Equal(t, "✅ 3 ta tranzaksiya saqlandi.", commitSummary(3, nil))

	got := commitSummary(1, []int{1, 3})
	assert.Equal(t, "✅ 1 ta tranzaksiya saqlandi.\n⚠️ Saqlanmadi: 2, 4", got)
}
