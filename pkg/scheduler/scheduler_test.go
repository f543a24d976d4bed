package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/db"
)

// fakeRepo returns canned rows on every scan and keeps the claim bookkeeping
// in memory, mirroring the conditional sent-flag update.
type fakeRepo struct {
	debts     []db.DebtReminder
	reminders []db.Reminder

	claimed      map[string]bool
	debtSearches []db.DebtReminderSearch
	searches     []db.ReminderSearch
	added        []db.Reminder
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{claimed: map[string]bool{}}
}

func (f *fakeRepo) DebtRemindersByFilters(_ context.Context, search *db.DebtReminderSearch, _ db.Pager, _ ...db.OpFunc) ([]db.DebtReminder, error) {
	f.debtSearches = append(f.debtSearches, *search)
	return f.debts, nil
}

func (f *fakeRepo) RemindersByFilters(_ context.Context, search *db.ReminderSearch, _ db.Pager, _ ...db.OpFunc) ([]db.Reminder, error) {
	f.searches = append(f.searches, *search)
	return f.reminders, nil
}

func (f *fakeRepo) MarkDebtReminderSent(_ context.Context, id int, column string) (bool, error) {
	return f.claim("debt", id, column), nil
}

func (f *fakeRepo) MarkReminderSent(_ context.Context, id int, column string) (bool, error) {
	return f.claim("reminder", id, column), nil
}

func (f *fakeRepo) claim(kind string, id int, column string) bool {
	key := fmt.Sprintf("%s/%d/%s", kind, id, column)
	if f.claimed[key] {
		return false
	}
	f.claimed[key] = true
	return true
}

func (f *fakeRepo) AddReminder(_ context.Context, reminder *db.Reminder, _ ...db.OpFunc) (*db.Reminder, error) {
	f.added = append(f.added, *reminder)
	return reminder, nil
}

func (f *fakeRepo) PurgePastReminders(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (f *fakeRepo) FullDebtReminder() db.OpFunc { return nil }

func (f *fakeRepo) FullReminder() db.OpFunc { return nil }

type fakeNotifier struct {
	debt    []string
	generic []string
	err     error
}

func (n *fakeNotifier) NotifyDebtReminder(_ context.Context, r db.DebtReminder, final bool) error {
	n.debt = append(n.debt, fmt.Sprintf("%d/%s", r.ID, windowLabel(final)))
	return n.err
}

func (n *fakeNotifier) NotifyReminder(_ context.Context, r db.Reminder, final bool) error {
	n.generic = append(n.generic, fmt.Sprintf("%d/%s", r.ID, windowLabel(final)))
	return n.err
}

func newTestScheduler(cr repo, n Notifier) *Scheduler {
	return &Scheduler{
		Logger:   embedlog.NewLogger(false, true),
		cr:       cr,
		cfg:      DefaultConfig(),
		notifier: n,
	}
}

func TestWindowRange(t *testing.T) {
	s := &Scheduler{cfg: DefaultConfig()}
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	from, to := s.windowRange(now, false)
	assert.Equal(t, now.Add(25*time.Minute), from)
	assert.Equal(t, now.Add(35*time.Minute), to)

	from, to = s.windowRange(now, true)
	assert.Equal(t, now.Add(-5*time.Minute), from)
	assert.Equal(t, now.Add(5*time.Minute), to)
}

func TestWindowLabel(t *testing.T) {
	assert.Equal(t, "t30", windowLabel(false))
	assert.Equal(t, "t0", windowLabel(true))
}

func TestScanFiresEachWindowOnce(t *testing.T) {
	cr := newFakeRepo()
	cr.debts = []db.DebtReminder{{ID: 7, UserID: 1}}
	cr.reminders = []db.Reminder{{ID: 9, UserID: 1}}
	n := &fakeNotifier{}
	s := newTestScheduler(cr, n)

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.scan(context.Background(), now)
	// rows still come back on the next tick: the claim guards keep windows quiet
	s.scan(context.Background(), now.Add(time.Minute))

	assert.Equal(t, []string{"7/t30", "7/t0"}, n.debt)
	assert.Equal(t, []string{"9/t30", "9/t0"}, n.generic)
}

func TestScanWindowFilters(t *testing.T) {
	cr := newFakeRepo()
	s := newTestScheduler(cr, &fakeNotifier{})

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.scan(context.Background(), now)

	require.Len(t, cr.debtSearches, 2)
	warning := cr.debtSearches[0]
	require.NotNil(t, warning.Sent30)
	assert.False(t, *warning.Sent30)
	assert.Nil(t, warning.Sent0)
	assert.Equal(t, now.Add(25*time.Minute), *warning.RemindFrom)
	assert.Equal(t, now.Add(35*time.Minute), *warning.RemindTo)

	final := cr.debtSearches[1]
	require.NotNil(t, final.Sent0)
	assert.False(t, *final.Sent0)
	assert.Nil(t, final.Sent30)
	assert.Equal(t, now.Add(-5*time.Minute), *final.RemindFrom)
	assert.Equal(t, now.Add(5*time.Minute), *final.RemindTo)

	require.Len(t, cr.searches, 2)
	require.NotNil(t, cr.searches[0].Done)
	assert.False(t, *cr.searches[0].Done)
}

func TestFireStaysClaimedAfterNotifyError(t *testing.T) {
	cr := newFakeRepo()
	n := &fakeNotifier{err: errors.New("telegram down")}
	s := newTestScheduler(cr, n)

	r := db.Reminder{ID: 3, UserID: 1}
	s.fire(context.Background(), r, true)

	n.err = nil
	s.fire(context.Background(), r, true)

	// the flag flips before delivery, so a failed notification is not retried
	assert.Equal(t, []string{"3/t0"}, n.generic)
}

func TestFireCascadesRecurring(t *testing.T) {
	cr := newFakeRepo()
	n := &fakeNotifier{}
	s := newTestScheduler(cr, n)

	monthly := db.RecurrenceMonthly
	r := db.Reminder{
		ID:         5,
		UserID:     2,
		Title:      "ijara to'lovi",
		RemindAt:   time.Date(2026, time.March, 31, 9, 0, 0, 0, time.UTC),
		Recurrence: &monthly,
	}

	s.fire(context.Background(), r, false)
	require.Empty(t, cr.added, "warning window must not cascade")

	s.fire(context.Background(), r, true)
	require.Len(t, cr.added, 1)

	next := cr.added[0]
	assert.Equal(t, time.Date(2026, time.April, 28, 9, 0, 0, 0, time.UTC), next.RemindAt)
	assert.Equal(t, r.Title, next.Title)
	assert.Equal(t, r.UserID, next.UserID)
	assert.False(t, next.Sent30)
	assert.False(t, next.Sent0)
	assert.Equal(t, db.StatusEnabled, next.StatusID)

	s.fire(context.Background(), r, true)
	require.Len(t, cr.added, 1, "t0 already claimed, no second cascade")
}
