package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// HandleMessage is the default update handler: contact shares and free-form
// text that is not a registered command.
func (h *Handlers) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Contact != nil {
		h.handleContact(ctx, update)
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}
	chatID := update.Message.Chat.ID

	// An admin mid-flow owns the next message, whatever the session says.
	if ps := h.cb.Posting.Get(chatID); ps != nil && h.cb.IsAdmin(chatID) {
		if ps.Broadcast {
			h.runBroadcast(ctx, chatID, text)
		} else {
			h.advancePosting(ctx, ps, text)
		}
		return
	}

	sess, ok := h.cb.Sessions.Get(chatID)
	if !ok {
		common.SendSessionExpired(ctx, h.cb.Messenger, chatID)
		return
	}

	switch {
	case sess.State == session.StateAwaitingContact:
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📱 Please use the button below to share your phone number.",
		})
		common.RequestContact(ctx, h.cb.Messenger, chatID)
	default:
		if field, ok := sess.State.CapturedField(); ok {
			h.captureField(ctx, sess, field, text)
			return
		}
		// Idle text: nudge back to the buttons.
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "🤔 I work best with buttons. Here's the menu:",
			ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
		})
	}
}

// captureField stores one free-text profile answer and returns the tutor to
// the main menu. The capture state is one-shot: it is cleared whether or
// not the value validates.
func (h *Handlers) captureField(ctx context.Context, sess *session.Session, field, text string) {
	chatID := sess.ChatID
	sess.State = session.StateMainMenu
	h.cb.Sessions.Put(sess)

	tutor, err := h.cb.Tutors.GetByID(ctx, sess.TutorID)
	if err != nil || tutor == nil {
		h.logger.Error("Failed to load tutor for field capture", zap.Int64("tutor_id", sess.TutorID), zap.Error(err))
		common.SendTryAgainLater(ctx, h.cb.Messenger, chatID)
		return
	}

	if msg, ok := applyFieldValue(tutor, field, text); !ok {
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: msg})
		callbacks.SendProfileEditMenu(ctx, h.cb, sess)
		return
	}

	if err := h.cb.Tutors.Save(ctx, tutor); err != nil {
		h.logger.Error("Failed to save profile field", zap.String("field", field), zap.Error(err))
		common.SendTryAgainLater(ctx, h.cb.Messenger, chatID)
		return
	}

	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Saved!",
	})
	callbacks.SendProfileEditMenu(ctx, h.cb, sess)
}

// applyFieldValue writes one captured value onto the profile. The returned
// string is a user-facing rejection message when ok is false.
func applyFieldValue(tutor *model.Tutor, field, text string) (string, bool) {
	switch field {
	case "name":
		tutor.Name = text
	case "age":
		age, err := strconv.Atoi(text)
		if err != nil || age < 16 || age > 99 {
			return "🤨 That doesn't look like an age. Send just the number, e.g. 27.", false
		}
		tutor.Age = age
	case "nationality":
		tutor.Nationality = text
	case "experience":
		tutor.YearsExperience = text
	case "intro":
		tutor.Introduction = text
	case "track_record":
		tutor.TrackRecord = text
	case "selling_points":
		tutor.SellingPoints = text
	default:
		if level, ok := strings.CutPrefix(field, "rate_"); ok {
			if _, err := strconv.Atoi(text); err != nil {
				return "🤨 Send the hourly rate as a plain number, e.g. 45.", false
			}
			tutor.EnsureNested()
			if !tutor.HourlyRates.SetRate(level, text) {
				return "🤔 I didn't understand that.", false
			}
			return "", true
		}
		return "🤔 I didn't understand that.", false
	}
	return "", true
}
