package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/formatting"
	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// Notifier is the slice of NotificationService the assignment lifecycle
// needs. Every call is best-effort and never returns an error.
type Notifier interface {
	NotifyTutor(ctx context.Context, tutorID int64, text string)
	UpdateChannelPost(ctx context.Context, a *model.Assignment, text string)
}

// ApplyResult classifies the outcome of an apply attempt. Missing and
// duplicate are normal outcomes surfaced as friendly messages, not errors.
type ApplyResult int

const (
	ApplyOK ApplyResult = iota
	ApplyNotFound
	ApplyAlreadyApplied
	ApplyClosed
)

type AssignmentService struct {
	assignments AssignmentStore
	notifier    Notifier
	logger      *zap.Logger
}

func NewAssignmentService(assignments AssignmentStore, notifier Notifier, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create persists a new assignment with a fresh ID and default Open status.
func (s *AssignmentService) Create(ctx context.Context, a *model.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = model.StatusOpen
	}
	if a.Applications == nil {
		a.Applications = []model.Application{}
	}

	if err := s.assignments.Create(ctx, a); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	s.logger.Info("Assignment created",
		zap.String("assignment_id", a.ID),
		zap.String("title", a.Title))
	return nil
}

// GetByID returns one assignment, or (nil, nil).
func (s *AssignmentService) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

// Save persists the assignment's current state.
func (s *AssignmentService) Save(ctx context.Context, a *model.Assignment) error {
	return s.assignments.Update(ctx, a)
}

// ListOpenPage returns one page of open assignments, newest first, with the
// requested page clamped against the current count. Level and location are
// optional browse filters matched best-effort on present fields only.
func (s *AssignmentService) ListOpenPage(ctx context.Context, level, location string, page int) ([]*model.Assignment, int, int, error) {
	total, err := s.assignments.CountOpenFiltered(ctx, level, location)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("count open assignments: %w", err)
	}

	page, totalPages := ClampPage(page, total)
	items, err := s.assignments.ListOpenFiltered(ctx, level, location, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list open assignments: %w", err)
	}
	return items, page, totalPages, nil
}

// ListAppliedPage returns one page of assignments the tutor applied to.
func (s *AssignmentService) ListAppliedPage(ctx context.Context, tutorID int64, page int) ([]*model.Assignment, int, int, error) {
	total, err := s.assignments.CountByApplicant(ctx, tutorID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("count applications: %w", err)
	}

	page, totalPages := ClampPage(page, total)
	items, err := s.assignments.ListByApplicant(ctx, tutorID, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list applications: %w", err)
	}
	return items, page, totalPages, nil
}

// ListStatusPage returns one page of assignments in a given status, newest
// first. Admin tooling only.
func (s *AssignmentService) ListStatusPage(ctx context.Context, status string, page int) ([]*model.Assignment, int, int, error) {
	total, err := s.assignments.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("count assignments: %w", err)
	}

	page, totalPages := ClampPage(page, total)
	items, err := s.assignments.ListByStatus(ctx, status, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list assignments: %w", err)
	}
	return items, page, totalPages, nil
}

// Delete removes an assignment outright. Admin tooling only; closing an
// assignment is the normal path.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}

// CountsByStatus returns assignment counts grouped by status.
func (s *AssignmentService) CountsByStatus(ctx context.Context) (map[string]int, error) {
	return s.assignments.CountsByStatus(ctx)
}

// Apply appends a Pending application for the tutor. At most one application
// per tutor is enforced here, before insertion, not by the store.
func (s *AssignmentService) Apply(ctx context.Context, assignmentID string, tutorID int64) (ApplyResult, *model.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return ApplyNotFound, nil, fmt.Errorf("apply: %w", err)
	}
	if a == nil {
		return ApplyNotFound, nil, nil
	}
	if a.Status != model.StatusOpen {
		return ApplyClosed, a, nil
	}
	if a.HasApplicant(tutorID) {
		return ApplyAlreadyApplied, a, nil
	}

	a.Applications = append(a.Applications, model.Application{
		TutorID:   tutorID,
		Status:    model.ApplicationPending,
		AppliedAt: time.Now(),
	})
	if err := s.assignments.Update(ctx, a); err != nil {
		return ApplyNotFound, nil, fmt.Errorf("apply: persist: %w", err)
	}

	s.logger.Info("Application submitted",
		zap.String("assignment_id", a.ID),
		zap.Int64("tutor_id", tutorID))
	return ApplyOK, a, nil
}

// Withdraw removes the tutor's application entry. Returns false when no
// entry existed.
func (s *AssignmentService) Withdraw(ctx context.Context, assignmentID string, tutorID int64) (bool, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return false, fmt.Errorf("withdraw: %w", err)
	}
	if a == nil || !a.RemoveApplicant(tutorID) {
		return false, nil
	}

	if err := s.assignments.Update(ctx, a); err != nil {
		return false, fmt.Errorf("withdraw: persist: %w", err)
	}

	s.logger.Info("Application withdrawn",
		zap.String("assignment_id", a.ID),
		zap.Int64("tutor_id", tutorID))
	return true, nil
}

// Accept marks one application Accepted and closes the assignment. The
// status mutation is persisted first and is authoritative; the accepted
// tutor, every other still-pending applicant, and the channel announcement
// are then notified best-effort, each independently.
func (s *AssignmentService) Accept(ctx context.Context, assignmentID string, tutorID int64) error {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	if a == nil {
		return fmt.Errorf("assignment not found")
	}

	app := a.ApplicationOf(tutorID)
	if app == nil {
		return fmt.Errorf("application not found")
	}

	app.Status = model.ApplicationAccepted
	a.Status = model.StatusClosed
	if err := s.assignments.Update(ctx, a); err != nil {
		return fmt.Errorf("accept: persist: %w", err)
	}

	s.logger.Info("Application accepted",
		zap.String("assignment_id", a.ID),
		zap.Int64("tutor_id", tutorID))

	s.notifier.NotifyTutor(ctx, tutorID, fmt.Sprintf(
		"🎉 Congratulations! Your application for \"%s\" has been accepted.\n\nThe coordinator will contact you with the details.",
		a.Title))

	for _, other := range a.Applications {
		if other.TutorID == tutorID || other.Status != model.ApplicationPending {
			continue
		}
		s.notifier.NotifyTutor(ctx, other.TutorID, fmt.Sprintf(
			"ℹ️ The assignment \"%s\" has been filled. Thank you for applying — more assignments are posted every week.",
			a.Title))
	}

	s.notifier.UpdateChannelPost(ctx, a, formatting.FormatAnnouncement(a))
	return nil
}

// Reject marks one application Rejected and notifies that tutor.
func (s *AssignmentService) Reject(ctx context.Context, assignmentID string, tutorID int64) error {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("reject: %w", err)
	}
	if a == nil {
		return fmt.Errorf("assignment not found")
	}

	app := a.ApplicationOf(tutorID)
	if app == nil {
		return fmt.Errorf("application not found")
	}

	app.Status = model.ApplicationRejected
	if err := s.assignments.Update(ctx, a); err != nil {
		return fmt.Errorf("reject: persist: %w", err)
	}

	s.logger.Info("Application rejected",
		zap.String("assignment_id", a.ID),
		zap.Int64("tutor_id", tutorID))

	s.notifier.NotifyTutor(ctx, tutorID, fmt.Sprintf(
		"Your application for \"%s\" was not successful this time. Keep an eye out for new assignments!",
		a.Title))
	return nil
}

// SetStatus writes an arbitrary admin-supplied status and refreshes the
// channel announcement.
func (s *AssignmentService) SetStatus(ctx context.Context, assignmentID, status string) (*model.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	if a == nil {
		return nil, nil
	}

	a.Status = status
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("set status: persist: %w", err)
	}

	s.notifier.UpdateChannelPost(ctx, a, formatting.FormatAnnouncement(a))
	return a, nil
}
