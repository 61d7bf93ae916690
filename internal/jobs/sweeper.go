package jobs

import (
	"context"
	"time"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
)

// UserLister lists every known user.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// RetentionSweeper enqueues a retention job for every user on a fixed
// interval.
type RetentionSweeper struct {
	queue    JobQueue
	users    UserLister
	interval time.Duration
	log      *logger.Logger
}

func NewRetentionSweeper(queue JobQueue, users UserLister, interval time.Duration) *RetentionSweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RetentionSweeper{
		queue:    queue,
		users:    users,
		interval: interval,
		log:      logger.Default().WithPrefix("retention-sweeper"),
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *RetentionSweeper) Run(ctx context.Context) {
	s.log.Info("retention sweeps every %v", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil {
			s.log.Error("retention sweep failed: %v", err)
		}
		select {
		case <-ctx.Done():
			s.log.Debug("retention sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep enqueues one job per user and returns how many were accepted.
// A full queue skips the user until the next sweep.
func (s *RetentionSweeper) Sweep(ctx context.Context) (int, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, u := range users {
		if err := s.queue.EnqueueRetention(u.UID); err != nil {
			s.log.Warn("failed to enqueue retention for %s: %v", u.UID, err)
			continue
		}
		enqueued++
	}
	s.log.Debug("enqueued retention for %d of %d users", enqueued, len(users))
	return enqueued, nil
}
