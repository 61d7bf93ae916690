package worker

import (
	"context"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
)

// RetentionApplier is the part of the privacy service a retention job needs.
type RetentionApplier interface {
	ApplyRetention(ctx context.Context, userID string) (*models.RetentionResult, error)
}

// RetentionJob purges one user's documents that fell out of their retention
// windows.
type RetentionJob struct {
	Privacy RetentionApplier
	UserID  string
}

func (j *RetentionJob) Name() string { return "apply_retention" }

func (j *RetentionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	res, err := j.Privacy.ApplyRetention(ctx, j.UserID)
	if err != nil {
		return err
	}
	if removed := res.Progress + res.Insights + res.Reports; removed > 0 {
		log.Info("retention removed %d documents", removed)
	}
	return nil
}
