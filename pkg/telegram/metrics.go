package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telegram bot metrics
var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, help, cancel
	)

	messagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_messages_processed_total",
			Help: "Total number of processed messages by type",
		},
		[]string{"type"}, // text, voice
	)

	buttonsPressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_buttons_pressed_total",
			Help: "Total number of menu button presses by type",
		},
		[]string{"button"}, // balance, debts
	)

	callbacksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_processed_total",
			Help: "Total number of processed callback queries by action",
		},
		[]string{"action"}, // save-one, save-all, edit, delete, cancel, debt-paid
	)

	decisionsRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_decisions_routed_total",
			Help: "Total number of extraction decisions by route",
		},
		[]string{"route"}, // reject, auto_commit, confirm_all, preview
	)

	transactionsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_transactions_saved_total",
			Help: "Total number of transactions written to the ledger",
		},
	)

	debtsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_debts_settled_total",
			Help: "Total number of debts marked fully repaid",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // transcription, no_transcript, database, download_file, user_not_found, user_registration
	)

	transcriptionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telegram_transcription_duration_seconds",
			Help:    "Duration of voice transcription in seconds",
			Buckets: []float64{0.5, 1.5, 2.5, 3.5},
		},
	)

	extractDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telegram_extract_duration_seconds",
			Help:    "Duration of the extraction pipeline in seconds",
			Buckets: []float64{0.5, 1.5, 2.5, 3.5, 5, 10},
		},
	)
)
