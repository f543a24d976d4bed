package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/db"
	"maqsad/pkg/maqsad"
	"maqsad/pkg/normalize"
	"maqsad/pkg/session"
	"maqsad/pkg/speech"
)

type Bot struct {
	api           *bot.Bot
	logger        embedlog.Logger
	manager       *maqsad.Manager
	transcriber   *speech.Transcriber
	disambiguator *normalize.Disambiguator
	sessions      *session.Store
	stateManager  *StateManager
	debug         bool
}

type Config struct {
	Token string
	Debug bool
}

// New creates a new Telegram bot instance
func New(cfg Config, manager *maqsad.Manager, transcriber *speech.Transcriber, disambiguator *normalize.Disambiguator, sessions *session.Store, logger embedlog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(defaultHandler(logger)),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:           api,
		logger:        logger,
		manager:       manager,
		transcriber:   transcriber,
		disambiguator: disambiguator,
		sessions:      sessions,
		stateManager:  NewStateManager(),
		debug:         cfg.Debug,
	}

	b.registerHandlers()

	return b, nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}

// registerHandlers registers all command handlers
func (b *Bot) registerHandlers() {
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleStart)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, b.handleHelp)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, b.handleCancel)

	// Callback query handler for inline keyboards
	b.api.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, b.handleCallback)

	// Text message handler, also receives voice messages
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, b.handleMessage)
}

// defaultHandler handles unknown updates
func defaultHandler(logger embedlog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil {
			logger.Print(ctx, "unknown update", "text", update.Message.Text, "from", update.Message.From.Username)
			_, err := b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text:   "Tushunarsiz buyruq. Yordam uchun /help ni bosing.",
			})
			if err != nil {
				logger.Error(ctx, "failed to send message", "err", err)
			}
		}
	}
}

// NotifyDebtReminder delivers a scheduled debt notification. It satisfies the
// scheduler Notifier contract.
func (b *Bot) NotifyDebtReminder(ctx context.Context, r db.DebtReminder, final bool) error {
	if r.User == nil {
		return fmt.Errorf("debt reminder %d has no user loaded", r.ID)
	}

	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    r.User.TelegramID,
		Text:      debtReminderText(r, final),
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// NotifyReminder delivers a scheduled to-do notification.
func (b *Bot) NotifyReminder(ctx context.Context, r db.Reminder, final bool) error {
	if r.User == nil {
		return fmt.Errorf("reminder %d has no user loaded", r.ID)
	}

	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    r.User.TelegramID,
		Text:      reminderText(r, final),
		ParseMode: models.ParseModeHTML,
	})
	return err
}
