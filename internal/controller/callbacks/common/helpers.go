package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
)

// AnswerCallback acknowledges a callback query without an alert. The
// messaging channel requires every callback to be answered regardless of
// what happens next.
func AnswerCallback(ctx context.Context, m callbacktypes.Messenger, callbackID, text string) {
	m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert acknowledges a callback query with a popup alert.
func AnswerCallbackAlert(ctx context.Context, m callbacktypes.Messenger, callbackID, text string) {
	m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// MessageFromCallback extracts the originating message, if accessible.
func MessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}
