package maqsad

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDeriveBalance(t *testing.T) {
	cb := deriveBalance(d(1_000_000), d(300_000), d(200_000), d(150_000))

	assert.True(t, cb.Cash.Equal(d(750_000)), "cash = income + borrowed - expense - lent, got %s", cb.Cash)
	assert.True(t, cb.Net.Equal(d(700_000)), "net = income - expense, got %s", cb.Net)
}

func TestDeriveBalanceZero(t *testing.T) {
	cb := deriveBalance(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, cb.Cash.IsZero())
	assert.True(t, cb.Net.IsZero())
}

func TestDeriveBalanceNegativeCash(t *testing.T) {
	// spending and lending more than came in drives cash below zero
	cb := deriveBalance(d(100_000), d(500_000), decimal.Zero, d(50_000))

	assert.True(t, cb.Cash.Equal(d(-450_000)), "got %s", cb.Cash)
	assert.True(t, cb.Net.Equal(d(-400_000)), "got %s", cb.Net)
}
