package maqsad

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/db"
)

// TariffFree is the tariff every new user starts on. Paid tariffs are granted
// through the admin RPC or the payment flow outside the core.
const (
	TariffFree     = "FREE"
	TariffPro      = "PRO"
	TariffBusiness = "BUSINESS"
)

// Config carries currency settings for the domain layer.
type Config struct {
	BaseCurrency string
	// FallbackRates are rate-to-base values used when the admin has not
	// written a rate for a currency yet.
	FallbackRates map[string]decimal.Decimal
}

type Manager struct {
	cr  db.CommonRepo
	db  db.DB
	cfg Config
	log embedlog.Logger
}

func NewManager(dbc db.DB, cfg Config, log embedlog.Logger) *Manager {
	return &Manager{
		cr:  db.NewCommonRepo(dbc),
		db:  dbc,
		cfg: cfg,
		log: log,
	}
}

// BaseCurrency returns the reporting currency.
func (m *Manager) BaseCurrency() string {
	return m.cfg.BaseCurrency
}

// User methods

// GetOrCreateUserByTelegramID gets user by Telegram ID or creates a new one.
func (m *Manager) GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error) {
	search := &db.UserSearch{
		TelegramID: &telegramID,
	}

	user, err := m.cr.OneUser(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search user: %w", err)
	}

	if user != nil {
		return NewUser(user), nil
	}

	newUser := &db.User{
		TelegramID:       telegramID,
		TelegramUsername: username,
		FirstName:        &firstName,
		LastName:         &lastName,
		Tariff:           TariffFree,
		StatusID:         db.StatusEnabled,
	}

	user, err = m.cr.AddUser(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	m.log.Print(ctx, "new user created", "user_id", user.ID, "telegram_user_id", telegramID, "username", username)

	return NewUser(user), nil
}

// GetUserByTelegramID gets user by Telegram user ID.
func (m *Manager) GetUserByTelegramID(ctx context.Context, telegramUserID int64) (*User, error) {
	search := &db.UserSearch{
		TelegramID: &telegramUserID,
	}

	user, err := m.cr.OneUser(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return NewUser(user), nil
}

// GrantTariff sets a user's tariff tag and expiry.
func (m *Manager) GrantTariff(ctx context.Context, userID int, tariff string, expiresAt time.Time) error {
	switch tariff {
	case TariffFree, TariffPro, TariffBusiness:
	default:
		return fmt.Errorf("unknown tariff %q", tariff)
	}

	user := &db.User{ID: userID, Tariff: tariff, TariffExpiresAt: &expiresAt}
	ok, err := m.cr.UpdateUser(ctx, user, db.WithColumns(db.Columns.User.Tariff, db.Columns.User.TariffExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to update tariff: %w", err)
	}
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}

	m.log.Print(ctx, "tariff granted", "user_id", userID, "tariff", tariff, "expires_at", expiresAt)

	return nil
}

// Transaction queries

// GetUserTransactions returns transactions for a user, newest first.
func (m *Manager) GetUserTransactions(ctx context.Context, userID int) ([]Transaction, error) {
	transactions, err := m.cr.TransactionsByFilters(ctx, &db.TransactionSearch{
		UserID: &userID,
	}, db.PagerDefault, m.cr.FullTransaction(), m.cr.DefaultTransactionSort())
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	return NewTransactions(transactions), nil
}

// GetOpenDebts returns debt transactions that are not fully repaid.
func (m *Manager) GetOpenDebts(ctx context.Context, userID int) ([]Transaction, error) {
	kind := db.KindDebt
	debts, err := m.cr.TransactionsByFilters(ctx, &db.TransactionSearch{
		UserID: &userID,
		Kind:   &kind,
	}, db.PagerDefault, m.cr.FullTransaction(), m.cr.DefaultTransactionSort())
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}

	open := debts[:0]
	for _, d := range debts {
		if d.PaidAmount.LessThan(d.Amount) {
			open = append(open, d)
		}
	}

	return NewTransactions(open), nil
}

// MarkDebtPaid records a repayment and cancels reminders once fully repaid.
func (m *Manager) MarkDebtPaid(ctx context.Context, userID, transactionID int, paid decimal.Decimal) error {
	tr, err := m.cr.TransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if tr == nil || tr.UserID != userID || tr.Kind != db.KindDebt {
		return fmt.Errorf("debt %d not found", transactionID)
	}

	newPaid := tr.PaidAmount.Add(paid)
	if newPaid.GreaterThan(tr.Amount) {
		newPaid = tr.Amount
	}

	tr.PaidAmount = newPaid
	if _, err := m.cr.UpdateTransaction(ctx, tr, db.WithColumns(db.Columns.Transaction.PaidAmount)); err != nil {
		return fmt.Errorf("failed to update paid amount: %w", err)
	}

	if newPaid.Equal(tr.Amount) {
		if _, err := m.cr.DeleteDebtRemindersByTransaction(ctx, transactionID); err != nil {
			return fmt.Errorf("failed to cancel reminders: %w", err)
		}
		m.log.Print(ctx, "debt fully repaid", "user_id", userID, "transaction_id", transactionID)
	}

	return nil
}

// SettleDebt marks a debt as fully repaid.
func (m *Manager) SettleDebt(ctx context.Context, userID, transactionID int) error {
	tr, err := m.cr.TransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if tr == nil || tr.UserID != userID || tr.Kind != db.KindDebt {
		return fmt.Errorf("debt %d not found", transactionID)
	}

	return m.MarkDebtPaid(ctx, userID, transactionID, tr.Amount.Sub(tr.PaidAmount))
}

// DeleteTransaction soft-deletes a row and cascades to its reminders.
func (m *Manager) DeleteTransaction(ctx context.Context, userID, transactionID int) error {
	tr, err := m.cr.TransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if tr == nil || tr.UserID != userID {
		return fmt.Errorf("transaction %d not found", transactionID)
	}

	if _, err := m.cr.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if _, err := m.cr.DeleteDebtRemindersByTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to cascade reminders: %w", err)
	}

	return nil
}
