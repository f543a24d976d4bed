package db

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/shopspring/decimal"
)

type CommonRepo struct {
	db      orm.DB
	filters map[string][]Filter
	sort    map[string][]SortField
	join    map[string][]string
}

// NewCommonRepo returns new repository
func NewCommonRepo(db orm.DB) CommonRepo {
	return CommonRepo{
		db: db,
		filters: map[string][]Filter{
			Tables.User.Name:         {StatusFilter},
			Tables.Transaction.Name:  {StatusFilter},
			Tables.DebtReminder.Name: {StatusFilter},
			Tables.Reminder.Name:     {StatusFilter},
			Tables.Tariff.Name:       {StatusFilter},
		},
		sort: map[string][]SortField{
			Tables.User.Name:         {{Column: Columns.User.CreatedAt, Direction: SortDesc}},
			Tables.Transaction.Name:  {{Column: Columns.Transaction.CreatedAt, Direction: SortDesc}},
			Tables.DebtReminder.Name: {{Column: Columns.DebtReminder.RemindAt, Direction: SortAsc}},
			Tables.Reminder.Name:     {{Column: Columns.Reminder.RemindAt, Direction: SortAsc}},
			Tables.CurrencyRate.Name: {{Column: Columns.CurrencyRate.Code, Direction: SortAsc}},
		},
		join: map[string][]string{
			Tables.User.Name:         {TableColumns},
			Tables.Transaction.Name:  {TableColumns, Columns.Transaction.User},
			Tables.DebtReminder.Name: {TableColumns, Columns.DebtReminder.User, Columns.DebtReminder.Transaction},
			Tables.Reminder.Name:     {TableColumns, Columns.Reminder.User},
			Tables.CurrencyRate.Name: {TableColumns},
			Tables.Tariff.Name:       {TableColumns},
		},
	}
}

// WithTransaction is a function that wraps CommonRepo with pg.Tx transaction.
func (cr CommonRepo) WithTransaction(tx *pg.Tx) CommonRepo {
	cr.db = tx
	return cr
}

// WithEnabledOnly is a function that adds "statusId"=1 as base filter.
func (cr CommonRepo) WithEnabledOnly() CommonRepo {
	f := make(map[string][]Filter, len(cr.filters))
	for i := range cr.filters {
		f[i] = make([]Filter, len(cr.filters[i]))
		copy(f[i], cr.filters[i])
		f[i] = append(f[i], StatusEnabledFilter)
	}
	cr.filters = f

	return cr
}

/*** User ***/

// FullUser returns full joins with all columns
func (cr CommonRepo) FullUser() OpFunc {
	return WithColumns(cr.join[Tables.User.Name]...)
}

// DefaultUserSort returns default sort.
func (cr CommonRepo) DefaultUserSort() OpFunc {
	return WithSort(cr.sort[Tables.User.Name]...)
}

// UserByID is a function that returns User by ID(s) or nil.
func (cr CommonRepo) UserByID(ctx context.Context, id int, ops ...OpFunc) (*User, error) {
	return cr.OneUser(ctx, &UserSearch{ID: &id}, ops...)
}

// OneUser is a function that returns one User by filters. It could return pg.ErrMultiRows.
func (cr CommonRepo) OneUser(ctx context.Context, search *UserSearch, ops ...OpFunc) (*User, error) {
	obj := &User{}
	err := buildQuery(ctx, cr.db, obj, search, cr.filters[Tables.User.Name], PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// UsersByFilters returns User list.
func (cr CommonRepo) UsersByFilters(ctx context.Context, search *UserSearch, pager Pager, ops ...OpFunc) (users []User, err error) {
	err = buildQuery(ctx, cr.db, &users, search, cr.filters[Tables.User.Name], pager, ops...).Select()
	return
}

// CountUsers returns count
func (cr CommonRepo) CountUsers(ctx context.Context, search *UserSearch, ops ...OpFunc) (int, error) {
	return buildQuery(ctx, cr.db, &User{}, search, cr.filters[Tables.User.Name], PagerOne, ops...).Count()
}

// AddUser adds User to DB.
func (cr CommonRepo) AddUser(ctx context.Context, user *User, ops ...OpFunc) (*User, error) {
	q := cr.db.ModelContext(ctx, user)
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.User.CreatedAt)
	}
	applyOps(q, ops...)
	_, err := q.Insert()

	return user, err
}

// UpdateUser updates User in DB.
func (cr CommonRepo) UpdateUser(ctx context.Context, user *User, ops ...OpFunc) (bool, error) {
	q := cr.db.ModelContext(ctx, user).WherePK()
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.User.ID, Columns.User.CreatedAt)
	}
	applyOps(q, ops...)
	res, err := q.Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, err
}

// DeleteUser set statusId to deleted in DB.
func (cr CommonRepo) DeleteUser(ctx context.Context, id int) (deleted bool, err error) {
	user := &User{ID: id, StatusID: StatusDeleted}

	return cr.UpdateUser(ctx, user, WithColumns(Columns.User.StatusID))
}

/*** Transaction ***/

// FullTransaction returns full joins with all columns
func (cr CommonRepo) FullTransaction() OpFunc {
	return WithColumns(cr.join[Tables.Transaction.Name]...)
}

// DefaultTransactionSort returns default sort.
func (cr CommonRepo) DefaultTransactionSort() OpFunc {
	return WithSort(cr.sort[Tables.Transaction.Name]...)
}

// TransactionByID is a function that returns Transaction by ID(s) or nil.
func (cr CommonRepo) TransactionByID(ctx context.Context, id int, ops ...OpFunc) (*Transaction, error) {
	return cr.OneTransaction(ctx, &TransactionSearch{ID: &id}, ops...)
}

// OneTransaction is a function that returns one Transaction by filters. It could return pg.ErrMultiRows.
func (cr CommonRepo) OneTransaction(ctx context.Context, search *TransactionSearch, ops ...OpFunc) (*Transaction, error) {
	obj := &Transaction{}
	err := buildQuery(ctx, cr.db, obj, search, cr.filters[Tables.Transaction.Name], PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// TransactionsByFilters returns Transaction list.
func (cr CommonRepo) TransactionsByFilters(ctx context.Context, search *TransactionSearch, pager Pager, ops ...OpFunc) (transactions []Transaction, err error) {
	err = buildQuery(ctx, cr.db, &transactions, search, cr.filters[Tables.Transaction.Name], pager, ops...).Select()
	return
}

// CountTransactions returns count
func (cr CommonRepo) CountTransactions(ctx context.Context, search *TransactionSearch, ops ...OpFunc) (int, error) {
	return buildQuery(ctx, cr.db, &Transaction{}, search, cr.filters[Tables.Transaction.Name], PagerOne, ops...).Count()
}

// AddTransaction adds Transaction to DB. The ledger is append-only.
func (cr CommonRepo) AddTransaction(ctx context.Context, transaction *Transaction, ops ...OpFunc) (*Transaction, error) {
	q := cr.db.ModelContext(ctx, transaction)
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.Transaction.CreatedAt)
	}
	applyOps(q, ops...)
	_, err := q.Insert()

	return transaction, err
}

// UpdateTransaction updates Transaction in DB. Rows are immutable except
// description and paidAmount; callers restrict columns via WithColumns.
func (cr CommonRepo) UpdateTransaction(ctx context.Context, transaction *Transaction, ops ...OpFunc) (bool, error) {
	q := cr.db.ModelContext(ctx, transaction).WherePK()
	if len(ops) == 0 {
		ops = []OpFunc{WithColumns(Columns.Transaction.Description, Columns.Transaction.PaidAmount)}
	}
	applyOps(q, ops...)
	res, err := q.Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, err
}

// DeleteTransaction set statusId to deleted in DB.
func (cr CommonRepo) DeleteTransaction(ctx context.Context, id int) (deleted bool, err error) {
	transaction := &Transaction{ID: id, StatusID: StatusDeleted}

	return cr.UpdateTransaction(ctx, transaction, WithColumns(Columns.Transaction.StatusID))
}

// BalanceRow is a per-currency aggregation over the transaction log.
type BalanceRow struct {
	Currency string          `pg:"currency"`
	Income   decimal.Decimal `pg:"income,use_zero"`
	Expense  decimal.Decimal `pg:"expense,use_zero"`
	Lent     decimal.Decimal `pg:"lent,use_zero"`
	Borrowed decimal.Decimal `pg:"borrowed,use_zero"`
}

// BalanceByUser aggregates the base sums per currency in one pass over the log.
func (cr CommonRepo) BalanceByUser(ctx context.Context, userID int) ([]BalanceRow, error) {
	var rows []BalanceRow
	_, err := cr.db.QueryContext(ctx, &rows, `
		SELECT currency,
			COALESCE(SUM(amount) FILTER (WHERE kind = ?), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE kind = ?), 0) AS expense,
			COALESCE(SUM(amount) FILTER (WHERE kind = ? AND "debtDirection" = ?), 0) AS lent,
			COALESCE(SUM(amount) FILTER (WHERE kind = ? AND "debtDirection" = ?), 0) AS borrowed
		FROM transactions
		WHERE "userId" = ? AND "statusId" != ?
		GROUP BY currency
		ORDER BY currency`,
		KindIncome, KindExpense,
		KindDebt, DebtDirectionLent,
		KindDebt, DebtDirectionBorrowed,
		userID, StatusDeleted,
	)

	return rows, err
}

/*** DebtReminder ***/

// FullDebtReminder returns full joins with all columns
func (cr CommonRepo) FullDebtReminder() OpFunc {
	return WithColumns(cr.join[Tables.DebtReminder.Name]...)
}

// DefaultDebtReminderSort returns default sort.
func (cr CommonRepo) DefaultDebtReminderSort() OpFunc {
	return WithSort(cr.sort[Tables.DebtReminder.Name]...)
}

// DebtReminderByID is a function that returns DebtReminder by ID(s) or nil.
func (cr CommonRepo) DebtReminderByID(ctx context.Context, id int, ops ...OpFunc) (*DebtReminder, error) {
	return cr.OneDebtReminder(ctx, &DebtReminderSearch{ID: &id}, ops...)
}

// OneDebtReminder is a function that returns one DebtReminder by filters. It could return pg.ErrMultiRows.
func (cr CommonRepo) OneDebtReminder(ctx context.Context, search *DebtReminderSearch, ops ...OpFunc) (*DebtReminder, error) {
	obj := &DebtReminder{}
	err := buildQuery(ctx, cr.db, obj, search, cr.filters[Tables.DebtReminder.Name], PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// DebtRemindersByFilters returns DebtReminder list.
func (cr CommonRepo) DebtRemindersByFilters(ctx context.Context, search *DebtReminderSearch, pager Pager, ops ...OpFunc) (reminders []DebtReminder, err error) {
	err = buildQuery(ctx, cr.db, &reminders, search, cr.filters[Tables.DebtReminder.Name], pager, ops...).Select()
	return
}

// AddDebtReminder inserts DebtReminder keyed by (userId, transactionId, remindAt).
// Re-inserting the same key is a no-op.
func (cr CommonRepo) AddDebtReminder(ctx context.Context, reminder *DebtReminder, ops ...OpFunc) (*DebtReminder, error) {
	q := cr.db.ModelContext(ctx, reminder).
		OnConflict(`("userId", "transactionId", "remindAt") DO NOTHING`)
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.DebtReminder.CreatedAt)
	}
	applyOps(q, ops...)
	_, err := q.Insert()

	return reminder, err
}

// UpdateDebtReminder updates DebtReminder in DB.
func (cr CommonRepo) UpdateDebtReminder(ctx context.Context, reminder *DebtReminder, ops ...OpFunc) (bool, error) {
	q := cr.db.ModelContext(ctx, reminder).WherePK()
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.DebtReminder.ID, Columns.DebtReminder.CreatedAt)
	}
	applyOps(q, ops...)
	res, err := q.Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, err
}

// DeleteDebtReminder set statusId to deleted in DB.
func (cr CommonRepo) DeleteDebtReminder(ctx context.Context, id int) (deleted bool, err error) {
	reminder := &DebtReminder{ID: id, StatusID: StatusDeleted}

	return cr.UpdateDebtReminder(ctx, reminder, WithColumns(Columns.DebtReminder.StatusID))
}

// DeleteDebtRemindersByTransaction cancels all reminders of a transaction.
func (cr CommonRepo) DeleteDebtRemindersByTransaction(ctx context.Context, transactionID int) (int, error) {
	res, err := cr.db.ModelContext(ctx, (*DebtReminder)(nil)).
		Set(`"statusId" = ?`, StatusDeleted).
		Where(`"transactionId" = ?`, transactionID).
		Update()
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

// MarkDebtReminderSent sets one of the sent flags. Flags only go 0 -> 1.
func (cr CommonRepo) MarkDebtReminderSent(ctx context.Context, id int, column string) (bool, error) {
	res, err := cr.db.ModelContext(ctx, (*DebtReminder)(nil)).
		Set("? = true", pg.Ident(column)).
		Where("id = ? AND ? = false", id, pg.Ident(column)).
		Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

/*** Reminder ***/

// FullReminder returns full joins with all columns
func (cr CommonRepo) FullReminder() OpFunc {
	return WithColumns(cr.join[Tables.Reminder.Name]...)
}

// DefaultReminderSort returns default sort.
func (cr CommonRepo) DefaultReminderSort() OpFunc {
	return WithSort(cr.sort[Tables.Reminder.Name]...)
}

// ReminderByID is a function that returns Reminder by ID(s) or nil.
func (cr CommonRepo) ReminderByID(ctx context.Context, id int, ops ...OpFunc) (*Reminder, error) {
	return cr.OneReminder(ctx, &ReminderSearch{ID: &id}, ops...)
}

// OneReminder is a function that returns one Reminder by filters. It could return pg.ErrMultiRows.
func (cr CommonRepo) OneReminder(ctx context.Context, search *ReminderSearch, ops ...OpFunc) (*Reminder, error) {
	obj := &Reminder{}
	err := buildQuery(ctx, cr.db, obj, search, cr.filters[Tables.Reminder.Name], PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// RemindersByFilters returns Reminder list.
func (cr CommonRepo) RemindersByFilters(ctx context.Context, search *ReminderSearch, pager Pager, ops ...OpFunc) (reminders []Reminder, err error) {
	err = buildQuery(ctx, cr.db, &reminders, search, cr.filters[Tables.Reminder.Name], pager, ops...).Select()
	return
}

// AddReminder adds Reminder to DB.
func (cr CommonRepo) AddReminder(ctx context.Context, reminder *Reminder, ops ...OpFunc) (*Reminder, error) {
	q := cr.db.ModelContext(ctx, reminder)
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.Reminder.CreatedAt)
	}
	applyOps(q, ops...)
	_, err := q.Insert()

	return reminder, err
}

// UpdateReminder updates Reminder in DB.
func (cr CommonRepo) UpdateReminder(ctx context.Context, reminder *Reminder, ops ...OpFunc) (bool, error) {
	q := cr.db.ModelContext(ctx, reminder).WherePK()
	if len(ops) == 0 {
		q = q.ExcludeColumn(Columns.Reminder.ID, Columns.Reminder.CreatedAt)
	}
	applyOps(q, ops...)
	res, err := q.Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, err
}

// MarkReminderSent sets one of the sent flags. Flags only go 0 -> 1.
func (cr CommonRepo) MarkReminderSent(ctx context.Context, id int, column string) (bool, error) {
	res, err := cr.db.ModelContext(ctx, (*Reminder)(nil)).
		Set("? = true", pg.Ident(column)).
		Where("id = ? AND ? = false", id, pg.Ident(column)).
		Update()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// PurgePastReminders soft-deletes completed reminders whose time is in the past.
func (cr CommonRepo) PurgePastReminders(ctx context.Context, before time.Time) (int, error) {
	res, err := cr.db.ModelContext(ctx, (*Reminder)(nil)).
		Set(`"statusId" = ?`, StatusDeleted).
		Where(`done = true AND "remindAt" < ?`, before).
		Update()
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

/*** CurrencyRate ***/

// FullCurrencyRate returns full joins with all columns
func (cr CommonRepo) FullCurrencyRate() OpFunc {
	return WithColumns(cr.join[Tables.CurrencyRate.Name]...)
}

// OneCurrencyRate is a function that returns one CurrencyRate by filters.
func (cr CommonRepo) OneCurrencyRate(ctx context.Context, search *CurrencyRateSearch, ops ...OpFunc) (*CurrencyRate, error) {
	obj := &CurrencyRate{}
	err := buildQuery(ctx, cr.db, obj, search, nil, PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// CurrencyRatesByFilters returns CurrencyRate list.
func (cr CommonRepo) CurrencyRatesByFilters(ctx context.Context, search *CurrencyRateSearch, pager Pager, ops ...OpFunc) (rates []CurrencyRate, err error) {
	err = buildQuery(ctx, cr.db, &rates, search, nil, pager, ops...).Select()
	return
}

// UpsertCurrencyRate writes rate-to-base for a currency code.
func (cr CommonRepo) UpsertCurrencyRate(ctx context.Context, rate *CurrencyRate) (*CurrencyRate, error) {
	_, err := cr.db.ModelContext(ctx, rate).
		OnConflict(`(code) DO UPDATE SET rate = EXCLUDED.rate, "updatedAt" = now()`).
		Insert()

	return rate, err
}

/*** Tariff ***/

// OneTariff is a function that returns one Tariff by filters.
func (cr CommonRepo) OneTariff(ctx context.Context, search *TariffSearch, ops ...OpFunc) (*Tariff, error) {
	obj := &Tariff{}
	err := buildQuery(ctx, cr.db, obj, search, cr.filters[Tables.Tariff.Name], PagerTwo, ops...).Select()

	if errors.Is(err, pg.ErrMultiRows) {
		return nil, err
	} else if errors.Is(err, pg.ErrNoRows) || errors.Is(err, io.EOF) {
		return nil, nil
	}

	return obj, err
}

// TariffsByFilters returns Tariff list.
func (cr CommonRepo) TariffsByFilters(ctx context.Context, search *TariffSearch, pager Pager, ops ...OpFunc) (tariffs []Tariff, err error) {
	err = buildQuery(ctx, cr.db, &tariffs, search, cr.filters[Tables.Tariff.Name], pager, ops...).Select()
	return
}
