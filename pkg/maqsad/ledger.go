package maqsad

import (
	"context"
	"time"

	"maqsad/pkg/db"
	"maqsad/pkg/extract"
	"maqsad/pkg/normalize"
)

// CommitResult reports which drafts of a batch were persisted.
type CommitResult struct {
	Saved  []int // transaction ids
	Failed []int // draft indices
}

// CommitDrafts persists a batch of drafts for a user. Each draft is written
// independently: a failing insert adds the draft's index to Failed and the
// rest of the batch proceeds. The ledger is append-only, so re-submitting a
// batch always yields fresh rows.
func (m *Manager) CommitDrafts(ctx context.Context, userID int, drafts []normalize.Draft) CommitResult {
	var res CommitResult

	for i, d := range drafts {
		id, err := m.commitDraft(ctx, userID, d)
		if err != nil {
			m.log.Error(ctx, "draft commit failed", "user_id", userID, "index", i, "err", err)
			res.Failed = append(res.Failed, i)
			continue
		}
		res.Saved = append(res.Saved, id)
	}

	return res
}

func (m *Manager) commitDraft(ctx context.Context, userID int, d normalize.Draft) (int, error) {
	tr := &db.Transaction{
		UserID:      userID,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Category:    d.Category,
		Description: d.Description,
		DueDate:     d.DueDate,
		StatusID:    db.StatusEnabled,
	}

	// debt-lent / debt-borrowed collapse to kind=debt plus a direction
	switch d.Kind {
	case extract.KindDebtLent:
		tr.Kind = db.KindDebt
		dir := db.DebtDirectionLent
		tr.DebtDirection = &dir
	case extract.KindDebtBorrowed:
		tr.Kind = db.KindDebt
		dir := db.DebtDirectionBorrowed
		tr.DebtDirection = &dir
	default:
		tr.Kind = string(d.Kind)
	}

	if d.Counterparty != "" {
		cp := d.Counterparty
		tr.Counterparty = &cp
	}

	if _, err := m.cr.AddTransaction(ctx, tr); err != nil {
		return 0, err
	}

	m.log.Print(ctx, "transaction created",
		"transaction_id", tr.ID,
		"user_id", userID,
		"kind", tr.Kind,
		"amount", tr.Amount.String(),
		"currency", tr.Currency,
	)

	if tr.Kind == db.KindDebt && d.DueDate != nil {
		if err := m.installDebtReminder(ctx, userID, tr.ID, *d.DueDate); err != nil {
			// reminder failure does not unwind the transaction
			m.log.Error(ctx, "failed to install debt reminder", "transaction_id", tr.ID, "err", err)
		}
	}

	return tr.ID, nil
}

// installDebtReminder creates the companion reminder keyed by
// (user, transaction, date). Insertion is idempotent.
func (m *Manager) installDebtReminder(ctx context.Context, userID, transactionID int, dueDate time.Time) error {
	_, err := m.cr.AddDebtReminder(ctx, &db.DebtReminder{
		UserID:        userID,
		TransactionID: transactionID,
		RemindAt:      dueDate,
		StatusID:      db.StatusEnabled,
	})

	return err
}
