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
)

// SendApplicationsPage renders one page of the tutor's applications with
// their review status, plus a trailing navigation message.
func SendApplicationsPage(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, page int) {
	assignments, page, totalPages, err := h.Assignments.ListAppliedPage(ctx, sess.TutorID, page)
	if err != nil {
		h.Logger.Error("Failed to list applications", zap.Int64("tutor_id", sess.TutorID), zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}

	if len(assignments) == 0 {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📋 View assignments", DataViewAssignments)).
			AddMainMenuButton().
			Build()
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        "🗂 You have not applied for anything yet.",
			ReplyMarkup: kb,
		})
		return
	}

	for _, a := range assignments {
		app := a.ApplicationOf(sess.TutorID)
		if app == nil {
			continue
		}
		h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      sess.ChatID,
			Text:        formatting.FormatApplication(a, app),
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: keyboard.NewBuilder().Row(keyboard.Button("🔍 Details", DataViewApp(a.ID))).Build(),
		})
	}

	nav := keyboard.NewBuilder().AddPagination("apps_page_", page, totalPages).Build()
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        fmt.Sprintf("🗂 Your applications, page %d of %d", page, totalPages),
		ReplyMarkup: nav,
	})
}

// handleViewApplication shows one assignment with the tutor's application
// status and a withdraw option while the review is still pending.
func handleViewApplication(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, assignmentID string) {
	a, err := h.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		h.Logger.Error("Failed to load assignment", zap.String("assignment_id", assignmentID), zap.Error(err))
		sendTryAgain(ctx, h, sess.ChatID)
		return
	}
	if a == nil {
		sendFallback(ctx, h, sess.ChatID, "")
		return
	}
	app := a.ApplicationOf(sess.TutorID)
	if app == nil {
		sendFallback(ctx, h, sess.ChatID, "")
		return
	}

	kb := keyboard.NewBuilder()
	if app.Status == model.ApplicationPending {
		kb.Row(keyboard.Button("↩️ Withdraw application", DataWithdrawAsk(a.ID)))
	}
	kb.AddMainMenuButton()

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        formatting.FormatApplication(a, app),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb.Build(),
	})
}

func handleWithdrawAsk(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, assignmentID string) {
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: sess.ChatID,
		Text:   "Withdraw your application? This cannot be undone.",
		ReplyMarkup: keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(DataWithdrawYes(assignmentID), DataMainMenu)).
			Build(),
	})
}

func handleWithdrawConfirm(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, callbackID, assignmentID string) {
	withdrawn, err := h.Assignments.Withdraw(ctx, assignmentID, sess.TutorID)
	if err != nil {
		h.Logger.Error("Failed to withdraw",
			zap.String("assignment_id", assignmentID),
			zap.Int64("tutor_id", sess.TutorID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "Could not withdraw, try again.")
		return
	}
	if !withdrawn {
		common.AnswerCallbackAlert(ctx, h.Messenger, callbackID, "Nothing to withdraw.")
		return
	}

	common.AnswerCallback(ctx, h.Messenger, callbackID, "Withdrawn")
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      sess.ChatID,
		Text:        "↩️ Application withdrawn.",
		ReplyMarkup: keyboard.NewBuilder().AddMainMenuButton().Build(),
	})
}
