package scheduler

import (
	"time"

	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetTokenScheduler clears expired password reset tokens from user rows.
// Expiry is already enforced at consume time; this sweep is housekeeping
// so stale token material does not linger in the database.
type ResetTokenScheduler struct {
	cron     *cron.Cron
	userRepo repository.UserRepository
}

func NewResetTokenScheduler(userRepo repository.UserRepository) *ResetTokenScheduler {
	return &ResetTokenScheduler{
		cron:     cron.New(),
		userRepo: userRepo,
	}
}

// Start runs the sweep hourly
func (s *ResetTokenScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting expired reset token sweep")

		cleared, err := s.userRepo.ClearExpiredResetTokens(time.Now())
		if err != nil {
			logger.Error("Failed to clear expired reset tokens", err)
			return
		}

		logger.Info("Expired reset token sweep completed", map[string]interface{}{
			"cleared": cleared,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset token sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset token scheduler started (hourly)")

	return nil
}

// Stop stops the scheduler
func (s *ResetTokenScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Reset token scheduler stopped")
}
