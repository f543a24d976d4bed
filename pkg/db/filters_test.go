package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithColumnsRouting(t *testing.T) {
	relations := []string{
		Columns.Transaction.User,
		Columns.DebtReminder.User,
		Columns.DebtReminder.Transaction,
		Columns.Reminder.User,
	}
	for _, name := range relations {
		assert.True(t, isRelationName(name), "%q must join as a relation", name)
	}

	// Plain columns go through q.Column: update and soft-delete paths pass
	// these to WithColumns, and q.Relation would poison the query for them.
	columns := []string{
		TableColumns,
		Columns.User.StatusID,
		Columns.User.Tariff,
		Columns.User.TariffExpiresAt,
		Columns.Transaction.Description,
		Columns.Transaction.PaidAmount,
		Columns.Transaction.StatusID,
		Columns.DebtReminder.Sent30,
		Columns.Reminder.Sent0,
	}
	for _, name := range columns {
		assert.False(t, isRelationName(name), "%q must select as a plain column", name)
	}
}

func TestJoinRegistryHoldsRelationsOnly(t *testing.T) {
	cr := NewCommonRepo(nil)
	for table, cols := range cr.join {
		for _, col := range cols {
			if col == TableColumns {
				continue
			}
			assert.True(t, isRelationName(col), "join registry for %q holds non-relation %q", table, col)
		}
	}
}
