package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// broadcastDelay spaces sequential sends to stay under outbound rate limits.
const broadcastDelay = 50 * time.Millisecond

// NotificationService owns every outbound message that is not a direct
// reply: tutor notifications, admin fan-out, broadcasts, channel posts.
// Sends are best-effort; a failure to reach one recipient never blocks the
// others and never aborts the mutation that triggered it.
type NotificationService struct {
	messenger     Messenger
	tutors        TutorStore
	adminChatIDs  []int64
	channelChatID int64
	botUsername   string
	delay         time.Duration
	logger        *zap.Logger
}

func NewNotificationService(
	messenger Messenger,
	tutors TutorStore,
	adminChatIDs []int64,
	channelChatID int64,
	botUsername string,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		messenger:     messenger,
		tutors:        tutors,
		adminChatIDs:  adminChatIDs,
		channelChatID: channelChatID,
		botUsername:   botUsername,
		delay:         broadcastDelay,
		logger:        logger,
	}
}

// NotifyChat sends one message to one chat. Errors are logged, not returned.
func (s *NotificationService) NotifyChat(ctx context.Context, chatID int64, text string) {
	if chatID == 0 {
		return
	}
	_, err := s.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		s.logger.Warn("Failed to notify chat",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// NotifyTutor resolves the tutor's chat and sends one message, best-effort.
func (s *NotificationService) NotifyTutor(ctx context.Context, tutorID int64, text string) {
	tutor, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil || tutor == nil {
		s.logger.Warn("Failed to resolve tutor for notification",
			zap.Int64("tutor_id", tutorID),
			zap.Error(err))
		return
	}
	s.NotifyChat(ctx, tutor.ChatID, text)
}

// NotifyAdmins sends one message to every configured admin chat.
func (s *NotificationService) NotifyAdmins(ctx context.Context, text string, keyboard *models.InlineKeyboardMarkup) {
	for _, chatID := range s.adminChatIDs {
		_, err := s.messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ReplyMarkup: keyboard,
		})
		if err != nil {
			s.logger.Warn("Failed to notify admin",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}
}

// Broadcast sends text to every tutor with a bound chat, sequentially with a
// small delay between sends. Per-recipient failures are counted, never
// propagated. Returns (sent, failed).
func (s *NotificationService) Broadcast(ctx context.Context, text string) (int, int) {
	tutors, err := s.tutors.ListWithChatID(ctx)
	if err != nil {
		s.logger.Error("Failed to list broadcast recipients", zap.Error(err))
		return 0, 0
	}

	sent, failed := 0, 0
	for _, tutor := range tutors {
		_, err := s.messenger.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: tutor.ChatID,
			Text:   text,
		})
		if err != nil {
			failed++
			s.logger.Warn("Broadcast send failed",
				zap.Int64("tutor_id", tutor.ID),
				zap.Int64("chat_id", tutor.ChatID),
				zap.Error(err))
		} else {
			sent++
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	s.logger.Info("Broadcast finished",
		zap.Int("sent", sent),
		zap.Int("failed", failed))
	return sent, failed
}

// PostToChannel announces a new assignment on the broadcast channel and
// returns the posted message ID, so the announcement can be edited in place
// later. Best-effort: returns 0 when no channel is configured or the post
// fails.
func (s *NotificationService) PostToChannel(ctx context.Context, assignmentID, text string) int {
	if s.channelChatID == 0 {
		return 0
	}

	params := &bot.SendMessageParams{
		ChatID:    s.channelChatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}
	if s.botUsername != "" {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "📩 Apply via bot", URL: s.applyLink(assignmentID)},
			}},
		}
	}

	msg, err := s.messenger.SendMessage(ctx, params)
	if err != nil {
		s.logger.Warn("Failed to post assignment to channel", zap.Error(err))
		return 0
	}
	return msg.ID
}

// UpdateChannelPost rewrites a previously posted announcement, dropping the
// apply button (used when the assignment closes). Best-effort.
func (s *NotificationService) UpdateChannelPost(ctx context.Context, a *model.Assignment, text string) {
	if s.channelChatID == 0 || a.ChannelMessageID == 0 {
		return
	}

	_, err := s.messenger.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    s.channelChatID,
		MessageID: a.ChannelMessageID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		s.logger.Warn("Failed to update channel post",
			zap.String("assignment_id", a.ID),
			zap.Int("message_id", a.ChannelMessageID),
			zap.Error(err))
	}
}

// applyLink builds a deep link that pre-seeds the session with the
// assignment before the tutor has authenticated.
func (s *NotificationService) applyLink(assignmentID string) string {
	return fmt.Sprintf("https://t.me/%s?start=assign_%s", s.botUsername, assignmentID)
}
