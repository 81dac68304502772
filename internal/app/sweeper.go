package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/controller/session"
)

// SessionMaxIdle is how long a chat may stay silent before its session is
// dropped and the tutor must re-authenticate.
const SessionMaxIdle = 24 * time.Hour

// Sweeper periodically deletes idle sessions.
type Sweeper struct {
	cron     *cron.Cron
	sessions session.Store
	logger   *zap.Logger
}

func NewSweeper(sessions session.Store, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		sessions: sessions,
		logger:   logger,
	}
}

// Start schedules the hourly sweep.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		removed := s.sessions.Sweep(SessionMaxIdle)
		if removed > 0 {
			s.logger.Info("Swept idle sessions", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Session sweeper started")
	return nil
}

// Stop halts the sweep and waits for a running job to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Session sweeper stopped")
}
