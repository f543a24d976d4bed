package vt

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"
	"github.com/vmkteam/zenrpc/v2"

	"maqsad/pkg/maqsad"
)

// Rate is a currency rate to the base currency.
type Rate struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

// AdminService manages currency rates and user tariffs.
type AdminService struct {
	zenrpc.Service
	manager *maqsad.Manager
	logger  embedlog.Logger
}

func NewAdminService(manager *maqsad.Manager, logger embedlog.Logger) AdminService {
	return AdminService{manager: manager, logger: logger}
}

// Rates returns all known rates to the base currency, stored and fallback.
func (s AdminService) Rates(ctx context.Context) ([]Rate, error) {
	rates, err := s.manager.Rates(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list rates", "err", err)
		return nil, ErrInternal
	}

	out := make([]Rate, 0, len(rates))
	for code, rate := range rates {
		out = append(out, Rate{Code: code, Rate: rate.String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out, nil
}

// SetRate upserts the rate of one currency to the base currency.
func (s AdminService) SetRate(ctx context.Context, code, rate string) (bool, error) {
	value, err := decimal.NewFromString(rate)
	if err != nil {
		return false, zenrpc.NewStringError(400, "bad rate value")
	}

	if err := s.manager.SetRate(ctx, code, value); err != nil {
		s.logger.Error(ctx, "failed to set rate", "err", err, "code", code)
		return false, ErrInternal
	}

	return true, nil
}

// GrantTariff sets a user's tariff for the given number of days.
func (s AdminService) GrantTariff(ctx context.Context, userID int, tariff string, days int) (bool, error) {
	if days <= 0 {
		return false, zenrpc.NewStringError(400, "days must be positive")
	}

	expiresAt := time.Now().AddDate(0, 0, days)
	if err := s.manager.GrantTariff(ctx, userID, tariff, expiresAt); err != nil {
		s.logger.Error(ctx, "failed to grant tariff", "err", err, "user_id", userID)
		return false, ErrInternal
	}

	return true, nil
}

// DeleteTransaction soft-deletes a user's transaction together with its debt
// reminders. Support operation for mis-parsed entries reported by users.
func (s AdminService) DeleteTransaction(ctx context.Context, userID, transactionID int) (bool, error) {
	if err := s.manager.DeleteTransaction(ctx, userID, transactionID); err != nil {
		s.logger.Error(ctx, "failed to delete transaction", "err", err, "user_id", userID, "transaction_id", transactionID)
		return false, ErrInternal
	}

	return true, nil
}
