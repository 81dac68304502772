package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/formatting"
)

// postingPrompts asks for the assignment fields one at a time, in step
// order. Requirements accepts "none" to leave the field empty.
var postingPrompts = map[session.PostingStep]string{
	session.StepTitle:        "📝 New assignment.\n\nWhat's the title? (e.g. \"Sec 3 A-Math, Tampines\")",
	session.StepLevel:        "What level? (e.g. Primary 5, Secondary 3, JC 1)",
	session.StepSubject:      "What subject?",
	session.StepLocation:     "Where? (area or nearest MRT)",
	session.StepRate:         "What's the rate? (e.g. $45/h)",
	session.StepFrequency:    "How often? (e.g. twice a week, 1.5h)",
	session.StepStartDate:    "When should lessons start?",
	session.StepDescription:  "Describe the student and what's needed.",
	session.StepRequirements: "Any tutor requirements? Send \"none\" to skip.",
}

// StartPosting begins the linear posting conversation. Callbacks and the
// /post command both land here.
func (h *Handlers) StartPosting(ctx context.Context, chatID int64) {
	h.cb.Posting.Put(&session.PostingSession{ChatID: chatID, Step: session.StepTitle})
	h.sendPostingPrompt(ctx, chatID, session.StepTitle)
}

// StartBroadcast arms the broadcast capture: the admin's next message goes
// out to every registered tutor.
func (h *Handlers) StartBroadcast(ctx context.Context, chatID int64) {
	h.cb.Posting.Put(&session.PostingSession{ChatID: chatID, Broadcast: true})
	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📣 Send the broadcast text. It goes to every registered tutor.\n\nUse /cancel to abort.",
		ReplyMarkup: cancelKeyboard(),
	})
}

func (h *Handlers) runBroadcast(ctx context.Context, chatID int64, text string) {
	h.cb.Posting.Delete(chatID)

	sent, failed := h.notifier.Broadcast(ctx, text)
	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("📣 Broadcast done: %d delivered, %d failed.", sent, failed),
	})
}

// advancePosting records one answer and asks the next question. The final
// step shows the full draft and waits for a yes/no.
func (h *Handlers) advancePosting(ctx context.Context, ps *session.PostingSession, text string) {
	chatID := ps.ChatID

	if ps.Step == session.StepConfirm {
		h.finishPosting(ctx, ps, text)
		return
	}

	switch ps.Step {
	case session.StepTitle:
		ps.Draft.Title = text
	case session.StepLevel:
		ps.Draft.Level = text
	case session.StepSubject:
		ps.Draft.Subject = text
	case session.StepLocation:
		ps.Draft.Location = text
	case session.StepRate:
		ps.Draft.Rate = text
	case session.StepFrequency:
		ps.Draft.Frequency = text
	case session.StepStartDate:
		ps.Draft.StartDate = text
	case session.StepDescription:
		ps.Draft.Description = text
	case session.StepRequirements:
		if !strings.EqualFold(text, "none") {
			ps.Draft.Requirements = text
		}
	}

	ps.Step++
	h.cb.Posting.Put(ps)

	if ps.Step == session.StepConfirm {
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "Here's the draft:\n\n" + formatting.FormatAssignment(&ps.Draft) + "\n\nPost it? (yes/no)",
			ParseMode: models.ParseModeMarkdown,
		})
		return
	}
	h.sendPostingPrompt(ctx, chatID, ps.Step)
}

func (h *Handlers) finishPosting(ctx context.Context, ps *session.PostingSession, text string) {
	chatID := ps.ChatID

	switch {
	case strings.EqualFold(text, "yes") || strings.EqualFold(text, "y"):
	case strings.EqualFold(text, "no") || strings.EqualFold(text, "n"):
		h.cb.Posting.Delete(chatID)
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🚫 Draft discarded.",
		})
		return
	default:
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Please answer yes or no, or /cancel to abort.",
		})
		return
	}

	h.cb.Posting.Delete(chatID)

	a := ps.Draft
	if err := h.writer.Create(ctx, &a); err != nil {
		h.logger.Error("Failed to create assignment", zap.Error(err))
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Could not save the assignment. Nothing was posted.",
		})
		return
	}

	// Channel announcement is best effort; the assignment exists either way.
	if msgID := h.notifier.PostToChannel(ctx, a.ID, formatting.FormatAnnouncement(&a)); msgID != 0 {
		a.ChannelMessageID = msgID
		if err := h.writer.Save(ctx, &a); err != nil {
			h.logger.Warn("Failed to store channel message id", zap.String("assignment_id", a.ID), zap.Error(err))
		}
	}

	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Posted %q.", a.Title),
	})
}

func (h *Handlers) sendPostingPrompt(ctx context.Context, chatID int64, step session.PostingStep) {
	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        postingPrompts[step],
		ReplyMarkup: cancelKeyboard(),
	})
}

func cancelKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("🚫 Cancel", callbacks.DataAdminCancel)).
		Build()
}
