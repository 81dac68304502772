package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// SendMainMenu renders the authenticated idle screen and resets the session
// state to main_menu.
func SendMainMenu(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) {
	sess.State = session.StateMainMenu
	h.Sessions.Put(sess)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 View assignments", DataViewAssignments)).
		Row(keyboard.Button("🗂 My applications", DataViewApplications)).
		Row(
			keyboard.Button("👤 My profile", DataProfileEdit),
			keyboard.Button("🔎 Filters", DataMenuFilters),
		).
		Build()

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "🏠 *Main menu*\n\nWhat would you like to do?",
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb,
	})
}

// SendProfileVerification renders the matched profile with the
// confirm/edit choice and moves the session to profile_verification.
func SendProfileVerification(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, tutor *model.Tutor) {
	sess.State = session.StateProfileVerification
	h.Sessions.Put(sess)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ That's me", DataProfileConfirm)).
		Row(keyboard.Button("✏️ Edit profile", DataProfileEdit)).
		AddMainMenuButton().
		Build()

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "We found your profile — please check it over.\n\n" + formatting.FormatProfile(tutor),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb,
	})
}

// sendFallback is the terminal default arm for unrecognized tokens. It must
// never fail a dispatch.
func sendFallback(ctx context.Context, h *callbacktypes.Handler, chatID int64, data string) {
	h.Logger.Warn("Unknown callback token",
		zap.String("data", data),
		zap.Int64("chat_id", chatID))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🤔 I didn't understand that. Let's go back to the menu.",
		ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
	})
}

// loadTutor fetches the session's tutor; on any failure the user gets the
// generic recovery reply and the caller stops.
func loadTutor(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) *model.Tutor {
	tutor, err := h.Tutors.GetByID(ctx, sess.TutorID)
	if err != nil {
		h.Logger.Error("Failed to load tutor",
			zap.Int64("tutor_id", sess.TutorID),
			zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return nil
	}
	if tutor == nil {
		h.Logger.Warn("Session bound to missing tutor", zap.Int64("tutor_id", sess.TutorID))
		sendTryAgain(ctx, h, sess.ChatID)
		return nil
	}
	return tutor
}

func sendTryAgain(ctx context.Context, h *callbacktypes.Handler, chatID int64) {
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "⚠️ Something went wrong. Please try again later.",
		ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
	})
}
