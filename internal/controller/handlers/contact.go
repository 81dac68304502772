package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
)

// handleContact verifies a shared phone number against the tutor roster.
// A match binds the chat to the tutor and shows the profile for
// confirmation; no match keeps the session waiting for another share.
func (h *Handlers) handleContact(ctx context.Context, update *models.Update) {
	chatID := update.Message.Chat.ID
	contact := update.Message.Contact

	// Only the sender's own contact counts as verification.
	if contact.UserID != update.Message.From.ID {
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🙅 Please share your own contact, not someone else's.",
		})
		return
	}

	sess, ok := h.cb.Sessions.Get(chatID)
	if !ok {
		sess = &session.Session{ChatID: chatID, State: session.StateAwaitingContact}
		h.cb.Sessions.Put(sess)
	}

	tutor, err := h.cb.Tutors.Authenticate(ctx, contact.PhoneNumber)
	if err != nil {
		h.logger.Error("Phone verification failed", zap.Int64("chat_id", chatID), zap.Error(err))
		common.SendTryAgainLater(ctx, h.cb.Messenger, chatID)
		return
	}
	if tutor == nil {
		h.logger.Info("Unregistered phone share", zap.Int64("chat_id", chatID))
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "😕 We couldn't find that number in our tutor roster.\n\n" +
				"If you haven't registered with SG TutorHub yet, sign up at sgtutorhub.com and come back once your registration is processed.",
		})
		return
	}

	if err := h.cb.Tutors.AttachChat(ctx, tutor.ID, chatID); err != nil {
		h.logger.Error("Failed to bind chat", zap.Int64("tutor_id", tutor.ID), zap.Error(err))
		common.SendTryAgainLater(ctx, h.cb.Messenger, chatID)
		return
	}

	// Keep any deep-link target picked up before verification.
	sess.TutorID = tutor.ID
	h.cb.Sessions.Put(sess)

	h.logger.Info("Tutor verified",
		zap.Int64("tutor_id", tutor.ID),
		zap.Int64("chat_id", chatID))

	// A deep-link target takes the tutor straight to the assignment it
	// came from; otherwise the usual profile confirmation runs.
	if callbacks.SendPendingAssignment(ctx, h.cb, sess) {
		sess.State = session.StateMainMenu
		h.cb.Sessions.Put(sess)
		return
	}
	callbacks.SendProfileVerification(ctx, h.cb, sess, tutor)
}
