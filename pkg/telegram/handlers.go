package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"maqsad/pkg/maqsad"
	"maqsad/pkg/normalize"
	"maqsad/pkg/session"
	"maqsad/pkg/speech"
)

// handleStart handles /start command - registers or welcomes user
func (b *Bot) handleStart(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("start").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From
	chatID := update.Message.Chat.ID

	dbUser, err := b.getOrCreateUser(ctx, user)
	if err != nil {
		errorsTotal.WithLabelValues("user_registration").Inc()
		b.logger.Error(ctx, "failed to get or create user", "err", err, "telegram_user_id", user.ID)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Ro'yxatdan o'tishda xatolik yuz berdi. Keyinroq urinib ko'ring.",
		})
		return
	}

	b.stateManager.ClearState(user.ID)

	welcomeText := fmt.Sprintf(
		"👋 Salom, %s!\n\n"+
			"Men moliyaviy hisob-kitob yordamchisiman.\n\n"+
			"Xarajat yoki daromadingizni matn yoki ovozli xabar bilan yuboring:\n"+
			"• <code>50 ming somsa oldim</code>\n"+
			"• <code>oylik keldi 5 mln</code>\n"+
			"• <code>Alisherga 200 ming qarz berdim</code>",
		user.FirstName,
	)

	b.logger.Print(ctx, "user started bot", "user_id", dbUser.ID, "telegram_user_id", user.ID, "username", user.Username)

	_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        welcomeText,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: mainMenuKeyboard(),
	})
}

// handleHelp handles /help command
func (b *Bot) handleHelp(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("help").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	helpText := `📚 <b>Qanday ishlataman:</b>

Xarajat, daromad yoki qarzni oddiy tilda yozing yoki ovozli xabar yuboring:
• <code>50 ming somsa oldim</code>
• <code>oylik keldi 5 mln</code>
• <code>Alisherga 200 ming qarz berdim, keyingi oy qaytaradi</code>

Bitta xabarda bir nechta amalni aytsangiz ham bo'ladi.

<b>💰 Balans</b> - valyutalar bo'yicha hisobot
<b>📒 Qarzlar</b> - ochiq qarzlar ro'yxati

/cancel - joriy amalni bekor qilish`

	_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        helpText,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: mainMenuKeyboard(),
	})
}

// handleCancel handles /cancel command - drops any pending flow
func (b *Bot) handleCancel(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("cancel").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	state := b.stateManager.GetState(update.Message.From.ID)
	if state.State == StateAwaitingEdit && state.EditSessionID != "" {
		b.sessions.Delete(state.EditSessionID)
	}
	b.stateManager.ClearState(update.Message.From.ID)

	_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "Bekor qilindi.",
		ReplyMarkup: mainMenuKeyboard(),
	})
}

// handleMessage handles text and voice messages
func (b *Bot) handleMessage(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	dbUser, err := b.getOrCreateUser(ctx, update.Message.From)
	if err != nil {
		errorsTotal.WithLabelValues("user_registration").Inc()
		b.logger.Error(ctx, "failed to get or create user", "err", err, "telegram_user_id", userID)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Xatolik yuz berdi. /start bilan qayta urinib ko'ring.",
		})
		return
	}

	if update.Message.Voice != nil {
		b.handleVoice(ctx, botAPI, update, dbUser)
		return
	}

	messagesProcessed.WithLabelValues("text").Inc()
	text := update.Message.Text

	switch text {
	case "💰 Balans":
		buttonsPressed.WithLabelValues("balance").Inc()
		b.handleBalance(ctx, botAPI, chatID, dbUser)
		return
	case "📒 Qarzlar":
		buttonsPressed.WithLabelValues("debts").Inc()
		b.handleDebts(ctx, botAPI, chatID, dbUser)
		return
	}

	stateData := b.stateManager.GetState(userID)
	if stateData.State == StateAwaitingEdit {
		b.handleEditInput(ctx, botAPI, chatID, userID, stateData, text)
		return
	}

	b.processUtterance(ctx, botAPI, chatID, dbUser, text, "")
}

// handleVoice downloads, transcribes and pipes the voice message through the
// same extraction path as text.
func (b *Bot) handleVoice(ctx context.Context, botAPI *bot.Bot, update *models.Update, user *maqsad.User) {
	messagesProcessed.WithLabelValues("voice").Inc()
	if update.Message == nil || update.Message.Voice == nil {
		return
	}

	chatID := update.Message.Chat.ID
	voice := update.Message.Voice

	audio, err := b.downloadTgFile(ctx, botAPI, voice.FileID)
	if err != nil {
		errorsTotal.WithLabelValues("download_file").Inc()
		b.logger.Error(ctx, "failed to download voice file", "err", err)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Ovozli xabarni yuklab bo'lmadi.",
			ReplyMarkup: mainMenuKeyboard(),
		})
		return
	}

	startTime := time.Now()
	transcript, err := b.transcriber.Transcribe(ctx, audio, time.Duration(voice.Duration)*time.Second)
	transcriptionDuration.Observe(time.Since(startTime).Seconds())

	if err != nil {
		if errors.Is(err, speech.ErrNoTranscript) {
			errorsTotal.WithLabelValues("no_transcript").Inc()
			_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:      chatID,
				Text:        "Ovozli xabarni eshitib bo'lmadi. Qaytadan gapirib ko'ring yoki matn yozing.",
				ReplyMarkup: mainMenuKeyboard(),
			})
			return
		}

		errorsTotal.WithLabelValues("transcription").Inc()
		b.logger.Error(ctx, "failed to transcribe voice", "err", err)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Ovozni aniqlashda xatolik yuz berdi.",
			ReplyMarkup: mainMenuKeyboard(),
		})
		return
	}

	b.logger.Print(ctx, "transcription result", "text", transcript)
	b.processUtterance(ctx, botAPI, chatID, user, transcript, transcript)
}

// processUtterance runs the extraction pipeline on one utterance and routes
// the outcome: reject, auto-commit, combined confirmation or per-draft
// preview. transcript is non-empty for voice input and echoed on cards.
func (b *Bot) processUtterance(ctx context.Context, botAPI *bot.Bot, chatID int64, user *maqsad.User, text, transcript string) {
	startTime := time.Now()
	decision := b.disambiguator.Decide(ctx, text, time.Now())
	extractDuration.Observe(time.Since(startTime).Seconds())

	decisionsRouted.WithLabelValues(routeLabel(decision.Route)).Inc()

	switch decision.Route {
	case normalize.RouteReject:
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        rejectCard(transcript),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: mainMenuKeyboard(),
		})

	case normalize.RouteAutoCommit:
		res := b.manager.CommitDrafts(ctx, user.ID, decision.Drafts)
		if len(res.Saved) == 0 {
			errorsTotal.WithLabelValues("database").Inc()
			_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:      chatID,
				Text:        "Saqlashda xatolik yuz berdi.",
				ReplyMarkup: mainMenuKeyboard(),
			})
			return
		}
		transactionsSaved.Add(float64(len(res.Saved)))
		text := savedCard(decision.Drafts, transcript)
		if len(res.Failed) > 0 {
			errorsTotal.WithLabelValues("database").Inc()
			text = commitSummary(len(res.Saved), res.Failed)
		}
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: mainMenuKeyboard(),
		})

	case normalize.RouteConfirmAll:
		sess := b.sessions.Put(user.ID, text, transcript, decision)
		msg, err := botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        confirmationCard(decision.Drafts, decision.Buckets, transcript),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: confirmAllKeyboard(sess.ID),
		})
		if err != nil {
			b.logger.Error(ctx, "failed to send confirmation card", "err", err)
			b.sessions.Delete(sess.ID)
			return
		}
		sess.CardID = msg.ID

	case normalize.RoutePreview:
		sess := b.sessions.Put(user.ID, text, transcript, decision)
		msg, err := botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        previewCard(decision.Drafts, decision.Buckets, transcript),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: previewKeyboard(sess.ID, decision.Drafts),
		})
		if err != nil {
			b.logger.Error(ctx, "failed to send preview card", "err", err)
			b.sessions.Delete(sess.ID)
			return
		}
		sess.CardID = msg.ID
	}
}

// handleBalance sends the per-currency balance report.
func (b *Bot) handleBalance(ctx context.Context, botAPI *bot.Bot, chatID int64, user *maqsad.User) {
	bal, err := b.manager.Balance(ctx, user.ID)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to get balance", "err", err, "user_id", user.ID)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Balansni olishda xatolik yuz berdi.",
		})
		return
	}

	_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        balanceCard(bal),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: mainMenuKeyboard(),
	})
}

// handleDebts sends the open debts list with mark-paid buttons.
func (b *Bot) handleDebts(ctx context.Context, botAPI *bot.Bot, chatID int64, user *maqsad.User) {
	debts, err := b.manager.GetOpenDebts(ctx, user.ID)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to get debts", "err", err, "user_id", user.ID)
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Qarzlarni olishda xatolik yuz berdi.",
		})
		return
	}

	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      debtsCard(debts),
		ParseMode: models.ParseModeHTML,
	}
	if len(debts) > 0 {
		params.ReplyMarkup = debtsKeyboard(debts)
	}

	_, _ = botAPI.SendMessage(ctx, params)
}

// handleEditInput replaces one draft of a pending card with the re-extracted
// content of the correction message.
func (b *Bot) handleEditInput(ctx context.Context, botAPI *bot.Bot, chatID int64, userID int64, stateData *UserStateData, text string) {
	sess := b.sessions.Get(stateData.EditSessionID)
	b.stateManager.ClearState(userID)

	if sess == nil || stateData.EditIndex >= len(sess.Decision.Drafts) {
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Tahrirlash muddati tugagan. Xabarni qaytadan yuboring.",
			ReplyMarkup: mainMenuKeyboard(),
		})
		return
	}

	decision := b.disambiguator.Decide(ctx, text, time.Now())
	if decision.Route == normalize.RouteReject || len(decision.Drafts) == 0 {
		_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Tuzatishni tushunolmadim. Masalan: <code>50 ming somsa</code>",
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: mainMenuKeyboard(),
		})
		return
	}

	i := stateData.EditIndex
	sess.Decision.Drafts[i] = decision.Drafts[0]
	sess.Decision.Buckets[i] = decision.Buckets[0]

	b.redrawCard(ctx, botAPI, chatID, sess)
}

// downloadTgFile downloads a Telegram file into memory by file ID.
func (b *Bot) downloadTgFile(ctx context.Context, botAPI *bot.Bot, fileID string) ([]byte, error) {
	file, err := botAPI.GetFile(ctx, &bot.GetFileParams{
		FileID: fileID,
	})
	if err != nil {
		b.logger.Error(ctx, "failed to get file", "err", err)
		return nil, err
	}

	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", botAPI.Token(), file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		b.logger.Error(ctx, "failed to download file from telegram", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// redrawCard re-renders the preview card after a draft was saved, edited or
// deleted.
func (b *Bot) redrawCard(ctx context.Context, botAPI *bot.Bot, chatID int64, sess *session.Session) {
	_, err := botAPI.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   sess.CardID,
		Text:        previewCard(sess.Decision.Drafts, sess.Decision.Buckets, sess.Transcript),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: previewKeyboard(sess.ID, sess.Decision.Drafts),
	})
	if err != nil {
		b.logger.Error(ctx, "failed to redraw card", "err", err)
	}
}

// finalizeCard replaces the card with a terminal message and drops the session.
func (b *Bot) finalizeCard(ctx context.Context, botAPI *bot.Bot, chatID int64, sess *session.Session, text string) {
	b.sessions.Delete(sess.ID)

	_, err := botAPI.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: sess.CardID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		b.logger.Error(ctx, "failed to finalize card", "err", err)
	}
}

// handleCallback handles callback queries from inline keyboards
func (b *Bot) handleCallback(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	userID := callback.From.ID

	var chatID int64
	if msg := callback.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	} else {
		b.logger.Error(ctx, "callback message is nil")
		return
	}

	b.logger.Print(ctx, "callback received", "data", callback.Data, "from", callback.From.Username)

	user, err := b.manager.GetUserByTelegramID(ctx, userID)
	if err != nil || user == nil {
		errorsTotal.WithLabelValues("user_not_found").Inc()
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Foydalanuvchi topilmadi. /start ni bosing.",
			ShowAlert:       true,
		})
		return
	}

	action, err := ParseAction(callback.Data)
	if err != nil {
		b.logger.Error(ctx, "failed to parse callback data", "err", err, "data", callback.Data)
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Noma'lum amal",
		})
		return
	}

	callbacksProcessed.WithLabelValues(string(action.Kind)).Inc()

	if action.Kind == ActionDebtPaid {
		b.handleDebtPaid(ctx, botAPI, callback, chatID, user, action.Index)
		return
	}

	sess := b.sessions.Get(action.SessionID)
	if sess == nil || sess.UserID != user.ID {
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Sessiya muddati tugagan. Xabarni qaytadan yuboring.",
			ShowAlert:       true,
		})
		return
	}

	switch action.Kind {
	case ActionSaveAll:
		b.handleSaveAll(ctx, botAPI, callback, chatID, user, sess)
	case ActionSaveOne:
		b.handleSaveOne(ctx, botAPI, callback, chatID, user, sess, action.Index)
	case ActionEdit:
		b.handleEditStart(ctx, botAPI, callback, chatID, sess, action.Index)
	case ActionDelete:
		b.handleDeleteDraft(ctx, botAPI, callback, chatID, sess, action.Index)
	case ActionCancel:
		b.finalizeCard(ctx, botAPI, chatID, sess, "❌ Bekor qilindi.")
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
		})
	}
}

// handleSaveAll commits every completed draft of the session.
func (b *Bot) handleSaveAll(ctx context.Context, botAPI *bot.Bot, callback *models.CallbackQuery, chatID int64, user *maqsad.User, sess *session.Session) {
	drafts := make([]normalize.Draft, 0, len(sess.Decision.Drafts))
	for _, d := range sess.Decision.Drafts {
		if !d.Placeholder {
			drafts = append(drafts, d)
		}
	}

	if len(drafts) == 0 {
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Saqlash uchun to'liq tranzaksiya yo'q. Avval tahrirlang.",
			ShowAlert:       true,
		})
		return
	}

	res := b.manager.CommitDrafts(ctx, user.ID, drafts)
	if len(res.Saved) == 0 {
		errorsTotal.WithLabelValues("database").Inc()
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Saqlashda xatolik yuz berdi.",
			ShowAlert:       true,
		})
		return
	}
	transactionsSaved.Add(float64(len(res.Saved)))
	if len(res.Failed) > 0 {
		errorsTotal.WithLabelValues("database").Inc()
	}

	b.finalizeCard(ctx, botAPI, chatID, sess, commitSummary(len(res.Saved), res.Failed))

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            "Saqlandi!",
	})
}

// handleSaveOne commits a single draft and removes it from the card.
func (b *Bot) handleSaveOne(ctx context.Context, botAPI *bot.Bot, callback *models.CallbackQuery, chatID int64, user *maqsad.User, sess *session.Session, i int) {
	if i < 0 || i >= len(sess.Decision.Drafts) {
		return
	}

	draft := sess.Decision.Drafts[i]
	if draft.Placeholder {
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Summa aniqlanmagan. Avval tahrirlang.",
			ShowAlert:       true,
		})
		return
	}

	res := b.manager.CommitDrafts(ctx, user.ID, []normalize.Draft{draft})
	if len(res.Saved) == 0 {
		errorsTotal.WithLabelValues("database").Inc()
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Saqlashda xatolik yuz berdi.",
			ShowAlert:       true,
		})
		return
	}
	transactionsSaved.Inc()

	b.removeDraft(ctx, botAPI, chatID, sess, i, "✅ Hammasi saqlandi.")

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            "Saqlandi!",
	})
}

// handleEditStart asks the user for a correction message for one draft.
func (b *Bot) handleEditStart(ctx context.Context, botAPI *bot.Bot, callback *models.CallbackQuery, chatID int64, sess *session.Session, i int) {
	if i < 0 || i >= len(sess.Decision.Drafts) {
		return
	}

	b.stateManager.SetStateData(callback.From.ID, &UserStateData{
		State:         StateAwaitingEdit,
		EditSessionID: sess.ID,
		EditIndex:     i,
	})

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      fmt.Sprintf("✏️ %d-tranzaksiya uchun to'g'ri variantni yozing.\nMasalan: <code>50 ming somsa</code>", i+1),
		ParseMode: models.ParseModeHTML,
	})
}

// handleDeleteDraft drops one draft from the card.
func (b *Bot) handleDeleteDraft(ctx context.Context, botAPI *bot.Bot, callback *models.CallbackQuery, chatID int64, sess *session.Session, i int) {
	if i < 0 || i >= len(sess.Decision.Drafts) {
		return
	}

	b.removeDraft(ctx, botAPI, chatID, sess, i, "Hammasi o'chirildi.")

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            "O'chirildi",
	})
}

// removeDraft deletes draft i from the session and either redraws the card or
// finalizes it when no drafts remain.
func (b *Bot) removeDraft(ctx context.Context, botAPI *bot.Bot, chatID int64, sess *session.Session, i int, doneText string) {
	sess.Decision.Drafts = append(sess.Decision.Drafts[:i], sess.Decision.Drafts[i+1:]...)
	if i < len(sess.Decision.Buckets) {
		sess.Decision.Buckets = append(sess.Decision.Buckets[:i], sess.Decision.Buckets[i+1:]...)
	}

	if len(sess.Decision.Drafts) == 0 {
		b.finalizeCard(ctx, botAPI, chatID, sess, doneText)
		return
	}

	b.redrawCard(ctx, botAPI, chatID, sess)
}

// handleDebtPaid marks a debt fully repaid from the debts list.
func (b *Bot) handleDebtPaid(ctx context.Context, botAPI *bot.Bot, callback *models.CallbackQuery, chatID int64, user *maqsad.User, transactionID int) {
	if err := b.manager.SettleDebt(ctx, user.ID, transactionID); err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to settle debt", "err", err, "transaction_id", transactionID)
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Qarzni yopishda xatolik yuz berdi.",
			ShowAlert:       true,
		})
		return
	}

	debtsSettled.Inc()

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
		Text:            "Qarz yopildi!",
	})

	// refresh the list
	b.handleDebts(ctx, botAPI, chatID, user)
}

func routeLabel(r normalize.Route) string {
	switch r {
	case normalize.RouteReject:
		return "reject"
	case normalize.RouteAutoCommit:
		return "auto_commit"
	case normalize.RouteConfirmAll:
		return "confirm_all"
	case normalize.RoutePreview:
		return "preview"
	default:
		return "unknown"
	}
}
