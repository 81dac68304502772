package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
)

// HandleStart handles /start, including channel deep links of the form
// /start assign_<id>. Starting over always re-prompts for the contact, even
// on an authenticated session.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess := &session.Session{ChatID: chatID, State: session.StateAwaitingContact}
	if payload, ok := startPayload(update.Message.Text); ok {
		if id, ok := strings.CutPrefix(payload, "assign_"); ok && id != "" {
			sess.PendingAssignmentID = id
		}
	}
	h.cb.Sessions.Put(sess)

	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "👋 Welcome to SG TutorHub!\n\n" +
			"I connect registered tutors with open tuition assignments.\n" +
			"To get started, verify your registered phone number below.",
	})
	common.RequestContact(ctx, h.cb.Messenger, chatID)
}

func startPayload(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "/start")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}

// HandleHelp handles /help.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	helpText := "📚 Commands:\n\n" +
		"/start - Verify your phone and open the main menu\n" +
		"/cancel - Abort what you were typing\n" +
		"/help - Show this help\n\n" +
		"Use the buttons to browse assignments, apply, and keep your profile up to date."
	if h.cb.IsAdmin(chatID) {
		helpText += "\n\nAdmin:\n" +
			"/post - Post a new assignment\n" +
			"/broadcast - Message all registered tutors\n" +
			"/stats - Assignment counts by status"
	}

	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   helpText,
	})
}

// HandleCancel handles /cancel. It aborts a pending admin flow or an
// in-progress field edit without touching anything already saved.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.cb.Posting.Get(chatID) != nil {
		h.cb.Posting.Delete(chatID)
		h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🚫 Cancelled.",
		})
		return
	}

	sess, ok := h.cb.Sessions.Get(chatID)
	if !ok {
		common.SendSessionExpired(ctx, h.cb.Messenger, chatID)
		return
	}
	if _, capturing := sess.State.CapturedField(); capturing && sess.Authenticated() {
		sess.State = session.StateMainMenu
		h.cb.Sessions.Put(sess)
	}
	if sess.Authenticated() {
		callbacks.SendMainMenu(ctx, h.cb, sess)
		return
	}
	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ Nothing to cancel.",
	})
}

// HandleStats handles the admin /stats command.
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, update.Message.Chat.ID) {
		return
	}
	callbacks.SendAdminStats(ctx, h.cb, update.Message.Chat.ID)
}

// HandlePost handles the admin /post command.
func (h *Handlers) HandlePost(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, update.Message.Chat.ID) {
		return
	}
	h.StartPosting(ctx, update.Message.Chat.ID)
}

// HandleBroadcast handles the admin /broadcast command.
func (h *Handlers) HandleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, update.Message.Chat.ID) {
		return
	}
	h.StartBroadcast(ctx, update.Message.Chat.ID)
}

func (h *Handlers) requireAdmin(ctx context.Context, chatID int64) bool {
	if h.cb.IsAdmin(chatID) {
		return true
	}
	h.cb.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⛔ This command is for admins only.",
	})
	return false
}
