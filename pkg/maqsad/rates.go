package maqsad

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"maqsad/pkg/db"
)

// RateToBase returns the conversion rate of a currency into the base
// currency. Admin-written rates win; configured fallbacks cover the rest.
func (m *Manager) RateToBase(ctx context.Context, code string) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == m.cfg.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := m.cr.OneCurrencyRate(ctx, &db.CurrencyRateSearch{Code: &code})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate: %w", err)
	}
	if rate != nil {
		return rate.Rate, nil
	}

	if fallback, ok := m.cfg.FallbackRates[code]; ok {
		return fallback, nil
	}

	return decimal.Zero, fmt.Errorf("no rate for currency %s", code)
}

// SetRate writes an admin-provided rate-to-base for a currency.
func (m *Manager) SetRate(ctx context.Context, code string, rate decimal.Decimal) error {
	code = strings.ToUpper(code)
	if code == m.cfg.BaseCurrency {
		return fmt.Errorf("base currency rate is fixed at 1")
	}
	if !rate.IsPositive() {
		return fmt.Errorf("rate must be positive")
	}

	_, err := m.cr.UpsertCurrencyRate(ctx, &db.CurrencyRate{Code: code, Rate: rate})
	if err != nil {
		return fmt.Errorf("failed to upsert rate: %w", err)
	}

	m.log.Print(ctx, "currency rate set", "code", code, "rate", rate.String())

	return nil
}

// Rates lists stored rates merged over fallbacks.
func (m *Manager) Rates(ctx context.Context) (map[string]decimal.Decimal, error) {
	stored, err := m.cr.CurrencyRatesByFilters(ctx, &db.CurrencyRateSearch{}, db.PagerNoLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(stored)+len(m.cfg.FallbackRates))
	for code, rate := range m.cfg.FallbackRates {
		out[code] = rate
	}
	for _, r := range stored {
		out[r.Code] = r.Rate
	}

	return out, nil
}
