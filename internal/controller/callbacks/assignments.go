package callbacks

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common/keyboard"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/service"
)

// SendAssignmentsPage renders one page of open assignments: a card message
// per assignment and a single trailing navigation message. The requested
// page is re-clamped on every render, so a stale page button lands on the
// nearest valid page instead of erroring.
func SendAssignmentsPage(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, page int) {
	assignments, page, totalPages, err := h.Assignments.ListOpenPage(ctx, sess.Filters.Level, sess.Filters.Location, page)
	if err != nil {
		h.Logger.Error("Failed to list open assignments", zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}

	if len(assignments) == 0 {
		text := "📭 No open assignments right now. Check back later!"
		if !sess.Filters.Empty() {
			text = "📭 No open assignments match your filters."
		}
		kb := keyboard.NewBuilder()
		if !sess.Filters.Empty() {
			kb.Row(keyboard.Button("🧹 Clear filters", DataFilterClear))
		}
		kb.AddMainMenuButton()
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        text,
			ReplyMarkup: kb.Build(),
		})
		return
	}

	for _, a := range assignments {
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        formatting.FormatAssignment(a),
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: assignmentCardKeyboard(a, sess.TutorID),
		})
	}

	nav := keyboard.NewBuilder().AddPagination("assign_page_", page, totalPages).Build()
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        fmt.Sprintf("📋 Open assignments, page %d of %d", page, totalPages),
		ReplyMarkup: nav,
	})
}

func assignmentCardKeyboard(a *model.Assignment, tutorID int64) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	if a.HasApplicant(tutorID) {
		kb.Row(keyboard.Button("↩️ Withdraw application", DataWithdrawAsk(a.ID)))
	} else {
		kb.Row(keyboard.Button("🙋 Apply", DataApply(a.ID)))
	}
	return kb.Build()
}

// handleApply records an application and tells the tutor what happened. On
// success the admins get a review card with accept and reject buttons.
func handleApply(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, callbackID, assignmentID string) {
	result, a, err := h.Assignments.Apply(ctx, assignmentID, sess.TutorID)
	if err != nil {
		h.Logger.Error("Failed to apply",
			zap.String("assignment_id", assignmentID),
			zap.Int64("tutor_id", sess.TutorID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "Could not apply, try again.")
		return
	}

	switch result {
	case service.ApplyOK:
		common.AnswerCallback(ctx, h.Messenger, callbackID, "Application sent!")
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("✅ My applications", DataViewApplications)).
			AddMainMenuButton().
			Build()
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        "🙌 You applied for *" + a.Title + "*.\nWe will let you know once the agency reviews it.",
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: kb,
		})
		notifyAdminsOfApplication(ctx, h, a, sess.TutorID)
	case service.ApplyAlreadyApplied:
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "You already applied for this assignment.")
	case service.ApplyClosed:
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "This assignment is no longer open.")
	case service.ApplyNotFound:
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "This assignment no longer exists.")
	}
}

func notifyAdminsOfApplication(ctx context.Context, h *callbacktypes.Handler, a *model.Assignment, tutorID int64) {
	tutor, err := h.Tutors.GetByID(ctx, tutorID)
	if err != nil || tutor == nil {
		h.Logger.Warn("Applicant lookup failed for admin notice", zap.Int64("tutor_id", tutorID), zap.Error(err))
		return
	}

	text := fmt.Sprintf("🔔 New application\n\n%s applied for %q.\nContact: %s",
		tutor.Name, a.Title, tutor.ContactNumber)
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Accept", DataAdminAccept(a.ID, tutorID)),
			keyboard.Button("❌ Reject", DataAdminReject(a.ID, tutorID)),
		).
		Build()
	h.Notifier.NotifyAdmins(ctx, text, kb)
}

// SendPendingAssignment resolves a deep-link target stored on the session
// and shows that single assignment card. Used right after authentication so
// a channel "Apply" click lands on the assignment it came from.
func SendPendingAssignment(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) bool {
	if sess.PendingAssignmentID == "" {
		return false
	}
	id := sess.PendingAssignmentID
	sess.PendingAssignmentID = ""
	h.Sessions.Put(sess)

	a, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		h.Logger.Error("Failed to resolve deep-link assignment", zap.String("assignment_id", id), zap.Error(err))
		return false
	}
	if a == nil || a.Status != model.StatusOpen {
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        "😔 That assignment is no longer available.",
			ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
		})
		return true
	}

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        formatting.FormatAssignment(a),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: assignmentCardKeyboard(a, sess.TutorID),
	})
	return true
}
