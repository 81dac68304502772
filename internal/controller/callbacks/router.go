package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/common"
	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
)

// Route dispatches a callback query. Every press is acknowledged exactly
// once; presses arriving after a session expired get a restart prompt
// instead of an error; unknown tokens fall through to a harmless fallback
// screen. Admin tokens are gated by chat identity before anything else runs.
func Route(ctx context.Context, h *callbacktypes.Handler, callback *models.CallbackQuery) {
	chatID := callback.From.ID
	action := ParseToken(callback.Data)

	// Decision tokens carry their own answer text; everything else gets a
	// silent ack up front so the client stops its spinner.
	switch action.Kind {
	case KindApply, KindWithdrawConfirm, KindAdminAccept, KindAdminReject:
	default:
		common.AnswerCallback(ctx, h.Messenger, callback.ID, "")
	}

	if action.Admin() {
		if !h.IsAdmin(chatID) {
			h.Logger.Warn("Non-admin pressed admin button",
				zap.Int64("chat_id", chatID),
				zap.String("data", callback.Data))
			common.AnswerCallbackAlert(ctx, h.Messenger, callback.ID, "⛔ Admins only.")
			return
		}
		routeAdmin(ctx, h, chatID, callback, action)
		return
	}

	sess, ok := h.Sessions.Get(chatID)
	if !ok && action.Kind != KindStart {
		common.SendSessionExpired(ctx, h.Messenger, chatID)
		return
	}

	if action.Kind == KindStart {
		sess = &session.Session{ChatID: chatID, State: session.StateAwaitingContact}
		h.Sessions.Put(sess)
		common.RequestContact(ctx, h.Messenger, chatID)
		return
	}

	if action.RequiresAuth() && !sess.Authenticated() {
		common.SendSessionExpired(ctx, h.Messenger, chatID)
		return
	}

	switch action.Kind {
	case KindNoop:
		// Page indicator and heading buttons. Already acked.
	case KindMainMenu, KindProfileConfirm:
		SendMainMenu(ctx, h, sess)
	case KindProfileEdit:
		SendProfileEditMenu(ctx, h, sess)
	case KindViewAssignments:
		SendAssignmentsPage(ctx, h, sess, 1)
	case KindAssignPage:
		SendAssignmentsPage(ctx, h, sess, action.Page)
	case KindViewApplications:
		SendApplicationsPage(ctx, h, sess, 1)
	case KindAppsPage:
		SendApplicationsPage(ctx, h, sess, action.Page)
	case KindApply:
		handleApply(ctx, h, sess, callback.ID, action.AssignmentID)
	case KindWithdrawAsk:
		handleWithdrawAsk(ctx, h, sess, action.AssignmentID)
	case KindWithdrawConfirm:
		handleWithdrawConfirm(ctx, h, sess, callback.ID, action.AssignmentID)
	case KindViewApplication:
		handleViewApplication(ctx, h, sess, action.AssignmentID)
	case KindMenuLevels:
		sendLevelsMenu(ctx, h, sess)
	case KindMenuLevel:
		if tutor := loadTutor(ctx, h, sess); tutor != nil {
			sendLevelMenu(ctx, h, sess, tutor, action.Level)
		}
	case KindMenuLocations:
		if tutor := loadTutor(ctx, h, sess); tutor != nil {
			sendLocationsMenu(ctx, h, sess, tutor)
		}
	case KindMenuTimeSlots:
		if tutor := loadTutor(ctx, h, sess); tutor != nil {
			sendTimeSlotsMenu(ctx, h, sess, tutor)
		}
	case KindMenuRates:
		if tutor := loadTutor(ctx, h, sess); tutor != nil {
			sendRatesMenu(ctx, h, sess, tutor)
		}
	case KindMenuFilters:
		sendFiltersMenu(ctx, h, sess)
	case KindEditField:
		handleEditField(ctx, h, sess, action.Field)
	case KindSetGender:
		handleSetEnum(ctx, h, sess, "gender", action.Value)
	case KindSetRace:
		handleSetEnum(ctx, h, sess, "race", action.Value)
	case KindSetEducation:
		handleSetEnum(ctx, h, sess, "education", action.Value)
	case KindSetRate:
		handleSetRate(ctx, h, sess, action.Level, action.Value)
	case KindToggleSubject, KindToggleSlot, KindToggleLocation:
		handleToggle(ctx, h, sess, action)
	case KindFilterLevel, KindFilterLocation, KindFilterClear:
		handleFilter(ctx, h, sess, action)
	default:
		sendFallback(ctx, h, chatID, callback.Data)
	}
}

func routeAdmin(ctx context.Context, h *callbacktypes.Handler, chatID int64, callback *models.CallbackQuery, action Action) {
	switch action.Kind {
	case KindAdminStats:
		SendAdminStats(ctx, h, chatID)
	case KindAdminBroadcast:
		if h.StartBroadcast != nil {
			h.StartBroadcast(ctx, chatID)
		}
	case KindAdminPost:
		if h.StartPosting != nil {
			h.StartPosting(ctx, chatID)
		}
	case KindAdminCancel:
		handleAdminCancel(ctx, h, chatID)
	case KindAdminAccept, KindAdminReject:
		handleAdminDecision(ctx, h, chatID, callback, action)
	}
}

// RouteCallback is the bot-facing handler signature.
func RouteCallback(h *callbacktypes.Handler) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery == nil {
			return
		}
		Route(ctx, h, update.CallbackQuery)
	}
}
