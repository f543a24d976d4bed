package maqsad

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyBalance is the six derived sums for one currency.
type CurrencyBalance struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Borrowed decimal.Decimal
	Lent     decimal.Decimal
	Cash     decimal.Decimal
	Net      decimal.Decimal
}

// Balance holds per-currency sums plus base-currency totals.
type Balance struct {
	PerCurrency map[string]CurrencyBalance
	TotalInBase CurrencyBalance
	Base        string
}

// deriveBalance computes the dependent sums:
//
//	cash = income + borrowed - expense - lent
//	net  = income - expense
func deriveBalance(income, expense, borrowed, lent decimal.Decimal) CurrencyBalance {
	return CurrencyBalance{
		Income:   income,
		Expense:  expense,
		Borrowed: borrowed,
		Lent:     lent,
		Cash:     income.Add(borrowed).Sub(expense).Sub(lent),
		Net:      income.Sub(expense),
	}
}

// Balance derives per-currency balances from the transaction log and converts
// them into the base currency. Pure over the log snapshot, no caching.
func (m *Manager) Balance(ctx context.Context, userID int) (*Balance, error) {
	rows, err := m.cr.BalanceByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balance: %w", err)
	}

	b := &Balance{
		PerCurrency: make(map[string]CurrencyBalance, len(rows)),
		Base:        m.cfg.BaseCurrency,
	}

	var totalIncome, totalExpense, totalBorrowed, totalLent decimal.Decimal
	for _, row := range rows {
		cb := deriveBalance(row.Income, row.Expense, row.Borrowed, row.Lent)
		b.PerCurrency[row.Currency] = cb

		rate, err := m.RateToBase(ctx, row.Currency)
		if err != nil {
			return nil, err
		}

		totalIncome = totalIncome.Add(cb.Income.Mul(rate))
		totalExpense = totalExpense.Add(cb.Expense.Mul(rate))
		totalBorrowed = totalBorrowed.Add(cb.Borrowed.Mul(rate))
		totalLent = totalLent.Add(cb.Lent.Mul(rate))
	}

	b.TotalInBase = deriveBalance(
		totalIncome.Round(2),
		totalExpense.Round(2),
		totalBorrowed.Round(2),
		totalLent.Round(2),
	)

	return b, nil
}
