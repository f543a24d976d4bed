package db

import (
	"time"

	"github.com/go-pg/pg/v10/orm"
	"github.com/shopspring/decimal"
)

// Transaction kinds as stored. Debt direction is a separate attribute.
const (
	KindIncome  = "income"
	KindExpense = "expense"
	KindDebt    = "debt"

	DebtDirectionLent     = "lent"
	DebtDirectionBorrowed = "borrowed"
)

// Recurrence patterns for reminders.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

var Tables = struct {
	User         struct{ Name, Alias string }
	Transaction  struct{ Name, Alias string }
	DebtReminder struct{ Name, Alias string }
	Reminder     struct{ Name, Alias string }
	CurrencyRate struct{ Name, Alias string }
	Tariff       struct{ Name, Alias string }
}{
	User:         struct{ Name, Alias string }{Name: "users", Alias: "t"},
	Transaction:  struct{ Name, Alias string }{Name: "transactions", Alias: "t"},
	DebtReminder: struct{ Name, Alias string }{Name: "debtReminders", Alias: "t"},
	Reminder:     struct{ Name, Alias string }{Name: "reminders", Alias: "t"},
	CurrencyRate: struct{ Name, Alias string }{Name: "currencyRates", Alias: "t"},
	Tariff:       struct{ Name, Alias string }{Name: "tariffs", Alias: "t"},
}

var Columns = struct {
	User struct {
		ID, TelegramID, TelegramUsername, FirstName, LastName, Tariff, TariffExpiresAt, StatusID, CreatedAt string
	}
	Transaction struct {
		ID, UserID, Kind, Amount, Currency, Category, Description, DebtDirection, Counterparty, DueDate, PaidAmount, StatusID, CreatedAt, User string
	}
	DebtReminder struct {
		ID, UserID, TransactionID, RemindAt, Sent30, Sent0, StatusID, CreatedAt, User, Transaction string
	}
	Reminder struct {
		ID, UserID, Title, RemindAt, Sent30, Sent0, Done, Recurrence, StatusID, CreatedAt, User string
	}
	CurrencyRate struct {
		ID, Code, Rate, UpdatedAt string
	}
	Tariff struct {
		ID, Code, Title, DurationDays, Price, StatusID string
	}
}{
	User: struct {
		ID, TelegramID, TelegramUsername, FirstName, LastName, Tariff, TariffExpiresAt, StatusID, CreatedAt string
	}{
		ID: "id", TelegramID: "telegramId", TelegramUsername: "telegramUsername",
		FirstName: "firstName", LastName: "lastName", Tariff: "tariff",
		TariffExpiresAt: "tariffExpiresAt", StatusID: "statusId", CreatedAt: "createdAt",
	},
	Transaction: struct {
		ID, UserID, Kind, Amount, Currency, Category, Description, DebtDirection, Counterparty, DueDate, PaidAmount, StatusID, CreatedAt, User string
	}{
		ID: "id", UserID: "userId", Kind: "kind", Amount: "amount", Currency: "currency",
		Category: "category", Description: "description", DebtDirection: "debtDirection",
		Counterparty: "counterparty", DueDate: "dueDate", PaidAmount: "paidAmount",
		StatusID: "statusId", CreatedAt: "createdAt",
		User: "User",
	},
	DebtReminder: struct {
		ID, UserID, TransactionID, RemindAt, Sent30, Sent0, StatusID, CreatedAt, User, Transaction string
	}{
		ID: "id", UserID: "userId", TransactionID: "transactionId", RemindAt: "remindAt",
		Sent30: "sent30", Sent0: "sent0", StatusID: "statusId", CreatedAt: "createdAt",
		User: "User", Transaction: "Transaction",
	},
	Reminder: struct {
		ID, UserID, Title, RemindAt, Sent30, Sent0, Done, Recurrence, StatusID, CreatedAt, User string
	}{
		ID: "id", UserID: "userId", Title: "title", RemindAt: "remindAt",
		Sent30: "sent30", Sent0: "sent0", Done: "done", Recurrence: "recurrence",
		StatusID: "statusId", CreatedAt: "createdAt",
		User: "User",
	},
	CurrencyRate: struct {
		ID, Code, Rate, UpdatedAt string
	}{
		ID: "id", Code: "code", Rate: "rate", UpdatedAt: "updatedAt",
	},
	Tariff: struct {
		ID, Code, Title, DurationDays, Price, StatusID string
	}{
		ID: "id", Code: "code", Title: "title", DurationDays: "durationDays",
		Price: "price", StatusID: "statusId",
	},
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID               int        `pg:"id,pk"`
	TelegramID       int64      `pg:"telegramId,use_zero"`
	TelegramUsername string     `pg:"telegramUsername,use_zero"`
	FirstName        *string    `pg:"firstName"`
	LastName         *string    `pg:"lastName"`
	Tariff           string     `pg:"tariff,use_zero"`
	TariffExpiresAt  *time.Time `pg:"tariffExpiresAt"`
	StatusID         int        `pg:"statusId,use_zero"`
	CreatedAt        time.Time  `pg:"createdAt,default:now()"`
}

type Transaction struct {
	tableName struct{} `pg:"transactions,alias:t,discard_unknown_columns"`

	ID            int             `pg:"id,pk"`
	UserID        int             `pg:"userId,use_zero"`
	Kind          string          `pg:"kind,use_zero"`
	Amount        decimal.Decimal `pg:"amount,use_zero"`
	Currency      string          `pg:"currency,use_zero"`
	Category      string          `pg:"category,use_zero"`
	Description   string          `pg:"description,use_zero"`
	DebtDirection *string         `pg:"debtDirection"`
	Counterparty  *string         `pg:"counterparty"`
	DueDate       *time.Time      `pg:"dueDate"`
	PaidAmount    decimal.Decimal `pg:"paidAmount,use_zero"`
	StatusID      int             `pg:"statusId,use_zero"`
	CreatedAt     time.Time       `pg:"createdAt,default:now()"`

	User *User `pg:"fk:userId,rel:has-one"`
}

type DebtReminder struct {
	tableName struct{} `pg:"\"debtReminders\",alias:t,discard_unknown_columns"`

	ID            int       `pg:"id,pk"`
	UserID        int       `pg:"userId,use_zero"`
	TransactionID int       `pg:"transactionId,use_zero"`
	RemindAt      time.Time `pg:"remindAt,use_zero"`
	Sent30        bool      `pg:"sent30,use_zero"`
	Sent0         bool      `pg:"sent0,use_zero"`
	StatusID      int       `pg:"statusId,use_zero"`
	CreatedAt     time.Time `pg:"createdAt,default:now()"`

	User        *User        `pg:"fk:userId,rel:has-one"`
	Transaction *Transaction `pg:"fk:transactionId,rel:has-one"`
}

type Reminder struct {
	tableName struct{} `pg:"reminders,alias:t,discard_unknown_columns"`

	ID         int       `pg:"id,pk"`
	UserID     int       `pg:"userId,use_zero"`
	Title      string    `pg:"title,use_zero"`
	RemindAt   time.Time `pg:"remindAt,use_zero"`
	Sent30     bool      `pg:"sent30,use_zero"`
	Sent0      bool      `pg:"sent0,use_zero"`
	Done       bool      `pg:"done,use_zero"`
	Recurrence *string   `pg:"recurrence"`
	StatusID   int       `pg:"statusId,use_zero"`
	CreatedAt  time.Time `pg:"createdAt,default:now()"`

	User *User `pg:"fk:userId,rel:has-one"`
}

type CurrencyRate struct {
	tableName struct{} `pg:"\"currencyRates\",alias:t,discard_unknown_columns"`

	ID        int             `pg:"id,pk"`
	Code      string          `pg:"code,use_zero"`
	Rate      decimal.Decimal `pg:"rate,use_zero"`
	UpdatedAt time.Time       `pg:"updatedAt,default:now()"`
}

type Tariff struct {
	tableName struct{} `pg:"tariffs,alias:t,discard_unknown_columns"`

	ID           int             `pg:"id,pk"`
	Code         string          `pg:"code,use_zero"`
	Title        string          `pg:"title,use_zero"`
	DurationDays int             `pg:"durationDays,use_zero"`
	Price        decimal.Decimal `pg:"price,use_zero"`
	StatusID     int             `pg:"statusId,use_zero"`
}

/*** Search structs ***/

type UserSearch struct {
	ID         *int
	TelegramID *int64
	Tariff     *string
}

func (s *UserSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.TelegramID != nil {
		q = q.Where("?TableAlias.\"telegramId\" = ?", *s.TelegramID)
	}
	if s.Tariff != nil {
		q = q.Where("?TableAlias.tariff = ?", *s.Tariff)
	}
	return q
}

type TransactionSearch struct {
	ID            *int
	UserID        *int
	Kind          *string
	Currency      *string
	DebtDirection *string
	HasDueDate    *bool
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

func (s *TransactionSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.UserID != nil {
		q = q.Where("?TableAlias.\"userId\" = ?", *s.UserID)
	}
	if s.Kind != nil {
		q = q.Where("?TableAlias.kind = ?", *s.Kind)
	}
	if s.Currency != nil {
		q = q.Where("?TableAlias.currency = ?", *s.Currency)
	}
	if s.DebtDirection != nil {
		q = q.Where("?TableAlias.\"debtDirection\" = ?", *s.DebtDirection)
	}
	if s.HasDueDate != nil {
		if *s.HasDueDate {
			q = q.Where("?TableAlias.\"dueDate\" IS NOT NULL")
		} else {
			q = q.Where("?TableAlias.\"dueDate\" IS NULL")
		}
	}
	if s.CreatedFrom != nil {
		q = q.Where("?TableAlias.\"createdAt\" >= ?", *s.CreatedFrom)
	}
	if s.CreatedTo != nil {
		q = q.Where("?TableAlias.\"createdAt\" <= ?", *s.CreatedTo)
	}
	return q
}

type DebtReminderSearch struct {
	ID            *int
	UserID        *int
	TransactionID *int
	RemindAt      *time.Time
	RemindFrom    *time.Time
	RemindTo      *time.Time
	Sent30        *bool
	Sent0         *bool
}

func (s *DebtReminderSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.UserID != nil {
		q = q.Where("?TableAlias.\"userId\" = ?", *s.UserID)
	}
	if s.TransactionID != nil {
		q = q.Where("?TableAlias.\"transactionId\" = ?", *s.TransactionID)
	}
	if s.RemindAt != nil {
		q = q.Where("?TableAlias.\"remindAt\" = ?", *s.RemindAt)
	}
	if s.RemindFrom != nil {
		q = q.Where("?TableAlias.\"remindAt\" >= ?", *s.RemindFrom)
	}
	if s.RemindTo != nil {
		q = q.Where("?TableAlias.\"remindAt\" <= ?", *s.RemindTo)
	}
	if s.Sent30 != nil {
		q = q.Where("?TableAlias.sent30 = ?", *s.Sent30)
	}
	if s.Sent0 != nil {
		q = q.Where("?TableAlias.sent0 = ?", *s.Sent0)
	}
	return q
}

type ReminderSearch struct {
	ID         *int
	UserID     *int
	Done       *bool
	RemindFrom *time.Time
	RemindTo   *time.Time
	Sent30     *bool
	Sent0      *bool
}

func (s *ReminderSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.UserID != nil {
		q = q.Where("?TableAlias.\"userId\" = ?", *s.UserID)
	}
	if s.Done != nil {
		q = q.Where("?TableAlias.done = ?", *s.Done)
	}
	if s.RemindFrom != nil {
		q = q.Where("?TableAlias.\"remindAt\" >= ?", *s.RemindFrom)
	}
	if s.RemindTo != nil {
		q = q.Where("?TableAlias.\"remindAt\" <= ?", *s.RemindTo)
	}
	if s.Sent30 != nil {
		q = q.Where("?TableAlias.sent30 = ?", *s.Sent30)
	}
	if s.Sent0 != nil {
		q = q.Where("?TableAlias.sent0 = ?", *s.Sent0)
	}
	return q
}

type CurrencyRateSearch struct {
	ID   *int
	Code *string
}

func (s *CurrencyRateSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.Code != nil {
		q = q.Where("?TableAlias.code = ?", *s.Code)
	}
	return q
}

type TariffSearch struct {
	ID   *int
	Code *string
}

func (s *TariffSearch) Apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}
	if s.ID != nil {
		q = q.Where("?TableAlias.id = ?", *s.ID)
	}
	if s.Code != nil {
		q = q.Where("?TableAlias.code = ?", *s.Code)
	}
	return q
}
