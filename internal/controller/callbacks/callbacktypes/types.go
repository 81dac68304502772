package callbacktypes

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/service"
)

// Messenger is the outbound channel as the callback handlers see it.
// *bot.Bot satisfies it; router tests substitute a recorder.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// TutorService is the profile slice the callback handlers need.
type TutorService interface {
	Authenticate(ctx context.Context, rawPhone string) (*model.Tutor, error)
	GetByID(ctx context.Context, id int64) (*model.Tutor, error)
	Save(ctx context.Context, t *model.Tutor) error
	AttachChat(ctx context.Context, tutorID, chatID int64) error
}

// AssignmentService is the assignment/application slice the callback
// handlers need.
type AssignmentService interface {
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListOpenPage(ctx context.Context, level, location string, page int) ([]*model.Assignment, int, int, error)
	ListAppliedPage(ctx context.Context, tutorID int64, page int) ([]*model.Assignment, int, int, error)
	Apply(ctx context.Context, assignmentID string, tutorID int64) (service.ApplyResult, *model.Assignment, error)
	Withdraw(ctx context.Context, assignmentID string, tutorID int64) (bool, error)
	Accept(ctx context.Context, assignmentID string, tutorID int64) error
	Reject(ctx context.Context, assignmentID string, tutorID int64) error
	CountsByStatus(ctx context.Context) (map[string]int, error)
}

// Notifier is the fan-out slice the callback handlers need.
type Notifier interface {
	NotifyAdmins(ctx context.Context, text string, keyboard *models.InlineKeyboardMarkup)
}

// Handler carries the shared dependencies for all callback handlers.
type Handler struct {
	Messenger   Messenger
	Tutors      TutorService
	Assignments AssignmentService
	Notifier    Notifier
	Sessions    session.Store
	Posting     *session.PostingStore
	IsAdmin     func(chatID int64) bool
	Logger      *zap.Logger

	// Wired in by the controller: the admin conversational flows live with
	// the message handlers.
	StartPosting   func(ctx context.Context, chatID int64)
	StartBroadcast func(ctx context.Context, chatID int64)
}
