package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
)

// RequestContact prompts for a phone share via a one-time reply keyboard.
// Entry point of the authentication flow; also the recovery path whenever a
// session has expired.
func RequestContact(ctx context.Context, m callbacktypes.Messenger, chatID int64) {
	m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "👋 Welcome to the tutor assignment bot!\n\n" +
			"Please share your phone number so we can find your tutor profile.",
		ReplyMarkup: &models.ReplyKeyboardMarkup{
			Keyboard: [][]models.KeyboardButton{
				{{Text: "📱 Share my phone number", RequestContact: true}},
			},
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		},
	})
}

// SendSessionExpired tells the chat its session is gone and offers the
// restart button.
func SendSessionExpired(ctx context.Context, m callbacktypes.Messenger, chatID int64) {
	m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏰ Your session has expired. Tap below to start again.",
		ReplyMarkup: keyboard.NewBuilder().
			Row(keyboard.Button("🔄 Start", "start")).
			Build(),
	})
}

// SendTryAgainLater is the generic collaborator-failure reply.
func SendTryAgainLater(ctx context.Context, m callbacktypes.Messenger, chatID int64) {
	m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "⚠️ Something went wrong. Please try again later.",
		ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
	})
}
