package service

import (
	"context"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// TutorStore is what the services need from the tutor repository.
type TutorStore interface {
	GetByID(ctx context.Context, id int64) (*model.Tutor, error)
	FindByContactCandidates(ctx context.Context, candidates []string) (*model.Tutor, error)
	Update(ctx context.Context, t *model.Tutor) error
	UpdateChatID(ctx context.Context, tutorID, chatID int64) error
	ListWithChatID(ctx context.Context) ([]*model.Tutor, error)
}

// AssignmentStore is what the services need from the assignment repository.
type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id string) error
	ListOpenFiltered(ctx context.Context, level, location string, offset, limit int) ([]*model.Assignment, error)
	CountOpenFiltered(ctx context.Context, level, location string) (int, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Assignment, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountsByStatus(ctx context.Context) (map[string]int, error)
	ListByApplicant(ctx context.Context, tutorID int64, offset, limit int) ([]*model.Assignment, error)
	CountByApplicant(ctx context.Context, tutorID int64) (int, error)
}
