package scheduler

import (
	"context"
	"time"

	"github.com/vmkteam/embedlog"

	"maqsad/pkg/db"
)

// Notifier delivers reminder notifications to the user; the Telegram layer
// implements it.
type Notifier interface {
	NotifyDebtReminder(ctx context.Context, r db.DebtReminder, final bool) error
	NotifyReminder(ctx context.Context, r db.Reminder, final bool) error
}

// Config tunes the daemon loops.
type Config struct {
	// Tick is the scan period, one minute in production.
	Tick time.Duration
	// Window is the firing tolerance around each target instant.
	Window time.Duration
	// Warning is the early-warning offset, 30 minutes in production.
	Warning time.Duration
}

func DefaultConfig() Config {
	return Config{
		Tick:    time.Minute,
		Window:  5 * time.Minute,
		Warning: 30 * time.Minute,
	}
}

// Sweeper is the extraction-session store slice housekeeping needs.
type Sweeper interface {
	Sweep() int
}

// repo is the slice of the data layer the scan loops use. db.CommonRepo
// implements it.
type repo interface {
	DebtRemindersByFilters(ctx context.Context, search *db.DebtReminderSearch, pager db.Pager, ops ...db.OpFunc) ([]db.DebtReminder, error)
	RemindersByFilters(ctx context.Context, search *db.ReminderSearch, pager db.Pager, ops ...db.OpFunc) ([]db.Reminder, error)
	MarkDebtReminderSent(ctx context.Context, id int, column string) (bool, error)
	MarkReminderSent(ctx context.Context, id int, column string) (bool, error)
	AddReminder(ctx context.Context, reminder *db.Reminder, ops ...db.OpFunc) (*db.Reminder, error)
	PurgePastReminders(ctx context.Context, before time.Time) (int, error)
	FullDebtReminder() db.OpFunc
	FullReminder() db.OpFunc
}

// Scheduler scans reminders once per tick and fires the T-30 and T-0 windows.
// Each window fires at most once per reminder: the sent flags transition
// 0 -> 1 and the marking update is the firing guard.
type Scheduler struct {
	embedlog.Logger
	cr       repo
	cfg      Config
	notifier Notifier
	sessions Sweeper
}

func New(dbc db.DB, cfg Config, notifier Notifier, sessions Sweeper, log embedlog.Logger) *Scheduler {
	return &Scheduler{
		Logger:   log,
		cr:       db.NewCommonRepo(dbc),
		cfg:      cfg,
		notifier: notifier,
		sessions: sessions,
	}
}

// Run blocks until ctx is done, scanning every tick and running daily
// housekeeping.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	housekeeping := time.NewTicker(24 * time.Hour)
	defer housekeeping.Stop()

	s.Print(ctx, "reminder scheduler started", "tick", s.cfg.Tick, "window", s.cfg.Window)

	for {
		select {
		case <-ctx.Done():
			s.Print(ctx, "reminder scheduler stopped")
			return
		case <-ticker.C:
			s.scan(ctx, time.Now())
		case <-housekeeping.C:
			s.housekeep(ctx, time.Now())
		}
	}
}

// scan fires due windows sequentially.
func (s *Scheduler) scan(ctx context.Context, now time.Time) {
	s.scanDebtWindow(ctx, now, false)
	s.scanDebtWindow(ctx, now, true)
	s.scanReminderWindow(ctx, now, false)
	s.scanReminderWindow(ctx, now, true)
}

// windowRange returns the remindAt range that is currently inside the firing
// window. final selects T-0 over T-30.
func (s *Scheduler) windowRange(now time.Time, final bool) (time.Time, time.Time) {
	if final {
		return now.Add(-s.cfg.Window), now.Add(s.cfg.Window)
	}
	return now.Add(s.cfg.Warning - s.cfg.Window), now.Add(s.cfg.Warning + s.cfg.Window)
}

func (s *Scheduler) scanDebtWindow(ctx context.Context, now time.Time, final bool) {
	from, to := s.windowRange(now, final)
	notSent := false
	search := &db.DebtReminderSearch{RemindFrom: &from, RemindTo: &to}
	if final {
		search.Sent0 = &notSent
	} else {
		search.Sent30 = &notSent
	}

	reminders, err := s.cr.DebtRemindersByFilters(ctx, search, db.PagerNoLimit, s.cr.FullDebtReminder())
	if err != nil {
		s.Error(ctx, "debt reminder scan failed", "err", err)
		scanErrors.Inc()
		return
	}

	for _, r := range reminders {
		s.fireDebt(ctx, r, final)
	}
}

func (s *Scheduler) fireDebt(ctx context.Context, r db.DebtReminder, final bool) {
	column := db.Columns.DebtReminder.Sent30
	if final {
		column = db.Columns.DebtReminder.Sent0
	}

	// claiming the flag first keeps the window single-shot
	claimed, err := s.cr.MarkDebtReminderSent(ctx, r.ID, column)
	if err != nil {
		s.Error(ctx, "failed to mark debt reminder", "id", r.ID, "err", err)
		scanErrors.Inc()
		return
	}
	if !claimed {
		return
	}

	if err := s.notifier.NotifyDebtReminder(ctx, r, final); err != nil {
		s.Error(ctx, "debt reminder notify failed", "id", r.ID, "err", err)
		notifyErrors.Inc()
		return
	}

	remindersFired.WithLabelValues("debt", windowLabel(final)).Inc()
}

func (s *Scheduler) scanReminderWindow(ctx context.Context, now time.Time, final bool) {
	from, to := s.windowRange(now, final)
	notSent := false
	notDone := false
	search := &db.ReminderSearch{RemindFrom: &from, RemindTo: &to, Done: &notDone}
	if final {
		search.Sent0 = &notSent
	} else {
		search.Sent30 = &notSent
	}

	reminders, err := s.cr.RemindersByFilters(ctx, search, db.PagerNoLimit, s.cr.FullReminder())
	if err != nil {
		s.Error(ctx, "reminder scan failed", "err", err)
		scanErrors.Inc()
		return
	}

	for _, r := range reminders {
		s.fire(ctx, r, final)
	}
}

func (s *Scheduler) fire(ctx context.Context, r db.Reminder, final bool) {
	column := db.Columns.Reminder.Sent30
	if final {
		column = db.Columns.Reminder.Sent0
	}

	claimed, err := s.cr.MarkReminderSent(ctx, r.ID, column)
	if err != nil {
		s.Error(ctx, "failed to mark reminder", "id", r.ID, "err", err)
		scanErrors.Inc()
		return
	}
	if !claimed {
		return
	}

	if err := s.notifier.NotifyReminder(ctx, r, final); err != nil {
		s.Error(ctx, "reminder notify failed", "id", r.ID, "err", err)
		notifyErrors.Inc()
		return
	}

	remindersFired.WithLabelValues("generic", windowLabel(final)).Inc()

	// the T-0 firing of a recurring reminder produces the next occurrence
	if final && r.Recurrence != nil {
		s.cascade(ctx, r)
	}
}

// cascade inserts the next occurrence of a recurring reminder.
func (s *Scheduler) cascade(ctx context.Context, r db.Reminder) {
	next, ok := NextOccurrence(r.RemindAt, *r.Recurrence)
	if !ok {
		s.Error(ctx, "unknown recurrence pattern", "id", r.ID, "pattern", *r.Recurrence)
		return
	}

	_, err := s.cr.AddReminder(ctx, &db.Reminder{
		UserID:     r.UserID,
		Title:      r.Title,
		RemindAt:   next,
		Recurrence: r.Recurrence,
		StatusID:   db.StatusEnabled,
	})
	if err != nil {
		s.Error(ctx, "failed to cascade recurring reminder", "id", r.ID, "err", err)
		return
	}

	remindersCascaded.Inc()
}

// housekeep runs the daily cleanup: past completed reminders are purged and
// expired extraction sessions evicted.
func (s *Scheduler) housekeep(ctx context.Context, now time.Time) {
	purged, err := s.cr.PurgePastReminders(ctx, now)
	if err != nil {
		s.Error(ctx, "housekeeping purge failed", "err", err)
	} else if purged > 0 {
		s.Print(ctx, "purged past reminders", "count", purged)
	}

	if s.sessions != nil {
		if n := s.sessions.Sweep(); n > 0 {
			s.Print(ctx, "swept expired sessions", "count", n)
		}
	}
}

func windowLabel(final bool) string {
	if final {
		return "t0"
	}
	return "t30"
}
