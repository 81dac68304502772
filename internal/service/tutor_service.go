package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/phone"
)

type TutorService struct {
	tutors TutorStore
	logger *zap.Logger
}

func NewTutorService(tutors TutorStore, logger *zap.Logger) *TutorService {
	return &TutorService{tutors: tutors, logger: logger}
}

// Authenticate resolves a shared contact to a tutor record. The raw number
// is expanded into its candidate representations and matched loosely against
// stored contact numbers. Returns (nil, nil) when no tutor matches.
func (s *TutorService) Authenticate(ctx context.Context, rawPhone string) (*model.Tutor, error) {
	candidates := phone.Candidates(rawPhone)
	if len(candidates) == 0 {
		return nil, nil
	}

	tutor, err := s.tutors.FindByContactCandidates(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("authenticate tutor: %w", err)
	}

	if tutor == nil {
		s.logger.Info("No tutor matched contact",
			zap.Strings("candidates", candidates))
		return nil, nil
	}

	s.logger.Info("Tutor authenticated",
		zap.Int64("tutor_id", tutor.ID),
		zap.String("stored_contact", tutor.ContactNumber))
	return tutor, nil
}

// GetByID returns one tutor, or (nil, nil).
func (s *TutorService) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	return s.tutors.GetByID(ctx, id)
}

// Save persists the tutor's current profile state.
func (s *TutorService) Save(ctx context.Context, t *model.Tutor) error {
	if err := s.tutors.Update(ctx, t); err != nil {
		return fmt.Errorf("save tutor: %w", err)
	}
	return nil
}

// AttachChat binds a chat identity to the tutor record so notifications can
// reach them.
func (s *TutorService) AttachChat(ctx context.Context, tutorID, chatID int64) error {
	if err := s.tutors.UpdateChatID(ctx, tutorID, chatID); err != nil {
		return fmt.Errorf("attach chat: %w", err)
	}

	s.logger.Info("Chat attached to tutor",
		zap.Int64("tutor_id", tutorID),
		zap.Int64("chat_id", chatID))
	return nil
}
