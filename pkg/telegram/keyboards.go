package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"maqsad/pkg/maqsad"
	"maqsad/pkg/normalize"
)

// mainMenuKeyboard returns main menu keyboard with quick actions
func mainMenuKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: "💰 Balans"},
				{Text: "📒 Qarzlar"},
			},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}
}

// confirmAllKeyboard returns the two-button card for all-high multi-draft
// decisions: save everything or cancel.
func confirmAllKeyboard(sessionID string) models.ReplyMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Hammasini saqlash", CallbackData: Action{Kind: ActionSaveAll, SessionID: sessionID}.Encode()},
				{Text: "❌ Bekor qilish", CallbackData: Action{Kind: ActionCancel, SessionID: sessionID}.Encode()},
			},
		},
	}
}

// previewKeyboard returns per-draft controls for mixed-confidence decisions:
// one row per draft (save, edit, delete) plus the save-all/cancel row.
func previewKeyboard(sessionID string, drafts []normalize.Draft) models.ReplyMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(drafts)+1)

	for i := range drafts {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: fmt.Sprintf("💾 %d", i+1), CallbackData: Action{Kind: ActionSaveOne, SessionID: sessionID, Index: i}.Encode()},
			{Text: fmt.Sprintf("✏️ %d", i+1), CallbackData: Action{Kind: ActionEdit, SessionID: sessionID, Index: i}.Encode()},
			{Text: fmt.Sprintf("🗑 %d", i+1), CallbackData: Action{Kind: ActionDelete, SessionID: sessionID, Index: i}.Encode()},
		})
	}

	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "✅ Hammasini saqlash", CallbackData: Action{Kind: ActionSaveAll, SessionID: sessionID}.Encode()},
		{Text: "❌ Bekor qilish", CallbackData: Action{Kind: ActionCancel, SessionID: sessionID}.Encode()},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// debtsKeyboard returns a mark-paid button per open debt.
func debtsKeyboard(debts []maqsad.Transaction) models.ReplyMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(debts))
	for i, d := range debts {
		rows = append(rows, []models.InlineKeyboardButton{
			{
				Text:         fmt.Sprintf("✅ %d to'landi", i+1),
				CallbackData: Action{Kind: ActionDebtPaid, SessionID: "-", Index: d.ID}.Encode(),
			},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// removeKeyboard returns markup to remove custom keyboard
// nolint:unused
func removeKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardRemove{
		RemoveKeyboard: true,
	}
}
