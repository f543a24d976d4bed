package telegram

import (
	"context"
	"errors"

	"github.com/go-telegram/bot/models"

	"maqsad/pkg/maqsad"
)

// getOrCreateUser gets user by Telegram ID or creates a new one
func (b *Bot) getOrCreateUser(ctx context.Context, tgUser *models.User) (*maqsad.User, error) {
	if tgUser == nil {
		return nil, errors.New("telegram user is nil")
	}

	return b.manager.GetOrCreateUserByTelegramID(
		ctx,
		tgUser.ID,
		tgUser.Username,
		tgUser.FirstName,
		tgUser.LastName,
	)
}
