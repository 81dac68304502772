package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/callbacks/callbacktypes"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// assignmentWriter is the slice of the assignment service the posting flow
// needs beyond what the shared callback handler already carries.
type assignmentWriter interface {
	Create(ctx context.Context, a *model.Assignment) error
	Save(ctx context.Context, a *model.Assignment) error
}

// broadcaster is the outbound fan-out slice for admin flows.
type broadcaster interface {
	Broadcast(ctx context.Context, text string) (int, int)
	PostToChannel(ctx context.Context, assignmentID, text string) int
}

// Handlers processes commands, contact shares and free-form text. Inline
// button presses are routed separately by the callbacks package; both share
// the same dependency bundle.
type Handlers struct {
	cb       *callbacktypes.Handler
	writer   assignmentWriter
	notifier broadcaster
	logger   *zap.Logger
}

func NewHandlers(cb *callbacktypes.Handler, writer assignmentWriter, notifier broadcaster, logger *zap.Logger) *Handlers {
	return &Handlers{
		cb:       cb,
		writer:   writer,
		notifier: notifier,
		logger:   logger,
	}
}
