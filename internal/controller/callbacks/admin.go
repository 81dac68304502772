package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// statusOrder fixes the display order of the stats digest.
var statusOrder = []model.AssignmentStatus{model.StatusOpen, model.StatusClosed, model.StatusCompleted}

func SendAdminStats(ctx context.Context, h *callbacktypes.Handler, chatID int64) {
	counts, err := h.Assignments.CountsByStatus(ctx)
	if err != nil {
		h.Logger.Error("Failed to count assignments", zap.Error(err))
		sendTryAgain(ctx, h, chatID)
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Assignments by status\n\n")
	total := 0
	for _, status := range statusOrder {
		n := counts[status]
		total += n
		sb.WriteString(fmt.Sprintf("%s: %d\n", formatting.GetAssignmentStatusDisplay(status), n))
	}
	for status, n := range counts {
		if status != model.StatusOpen && status != model.StatusClosed && status != model.StatusCompleted {
			total += n
			sb.WriteString(fmt.Sprintf("%s: %d\n", formatting.GetAssignmentStatusDisplay(status), n))
		}
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d", total))

	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   sb.String(),
	})
}

// handleAdminDecision settles one application. The service persists the
// outcome first and then fans out notifications, so a send failure never
// loses the decision.
func handleAdminDecision(ctx context.Context, h *callbacktypes.Handler, chatID int64, callback *models.CallbackQuery, action Action) {
	var err error
	var verdict string
	switch action.Kind {
	case KindAdminAccept:
		err = h.Assignments.Accept(ctx, action.AssignmentID, action.TutorID)
		verdict = "accepted"
	case KindAdminReject:
		err = h.Assignments.Reject(ctx, action.AssignmentID, action.TutorID)
		verdict = "rejected"
	}
	if err != nil {
		h.Logger.Error("Failed to settle application",
			zap.String("assignment_id", action.AssignmentID),
			zap.Int64("tutor_id", action.TutorID),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, h.Messenger, callback.ID, "Could not apply the decision, try again.")
		return
	}

	common.AnswerCallback(ctx, h.Messenger, callback.ID, "Done")

	// Rewrite the admin card in place so the buttons disappear and the
	// verdict stays attached to the application it settled.
	if msg := common.MessageFromCallback(callback); msg != nil {
		h.Messenger.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      fmt.Sprintf("%s\n\n✅ Application by tutor %d %s.", msg.Text, action.TutorID, verdict),
		})
		return
	}
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Application by tutor %d %s.", action.TutorID, verdict),
	})
}

func handleAdminCancel(ctx context.Context, h *callbacktypes.Handler, chatID int64) {
	h.Posting.Delete(chatID)
	h.Messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🚫 Cancelled.",
	})
}
