package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remindersFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_reminders_fired_total",
			Help: "Total number of fired reminder notifications by kind and window",
		},
		[]string{"kind", "window"}, // kind: debt, generic; window: t30, t0
	)

	remindersCascaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_reminders_cascaded_total",
			Help: "Total number of recurring reminders regenerated after firing",
		},
	)

	scanErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_scan_errors_total",
			Help: "Total number of failed reminder scans and flag updates",
		},
	)

	notifyErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_notify_errors_total",
			Help: "Total number of failed reminder deliveries",
		},
	)
)
