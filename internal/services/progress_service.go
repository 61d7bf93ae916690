package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// ProgressService records and reads learning activity
type ProgressService interface {
	RecordProgress(ctx context.Context, in models.NewProgressEvent) (*models.ProgressEvent, error)
	GetStudentProgress(ctx context.Context, studentID string) ([]models.ProgressEvent, error)
	GetRecentProgress(ctx context.Context, studentID string, limit int) ([]models.ProgressEvent, error)
	ListProgressBetween(ctx context.Context, studentID string, start, end time.Time) ([]models.ProgressEvent, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	metrics      MetricsService
	now          Clock
}

// NewProgressService creates a new ProgressService. Every recorded event
// triggers a metrics recomputation for its student.
func NewProgressService(progressRepo repository.ProgressRepository, metrics MetricsService, now Clock) ProgressService {
	return &progressService{progressRepo: progressRepo, metrics: metrics, now: orNow(now)}
}

func (s *progressService) RecordProgress(ctx context.Context, in models.NewProgressEvent) (*models.ProgressEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	log.Debug("recording progress: student_id=%s, subject=%s, topic=%s", in.StudentID, in.Subject, in.Topic)

	if in.StudentID == "" {
		return nil, errors.NewValidationError("student_id", "cannot be empty")
	}
	if in.Attempts < 1 {
		return nil, errors.NewValidationError("attempts", "must be at least 1")
	}
	if !in.Difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be beginner, intermediate or advanced")
	}

	event := models.ProgressEvent{
		ID:          uuid.NewString(),
		StudentID:   in.StudentID,
		Subject:     in.Subject,
		Topic:       in.Topic,
		CompletedAt: s.now(),
		Score:       in.Score,
		TimeSpent:   in.TimeSpent,
		Difficulty:  in.Difficulty,
		Attempts:    in.Attempts,
	}
	if err := s.progressRepo.Insert(ctx, event); err != nil {
		log.Error("failed to record progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("progress recorded: id=%s, student_id=%s, score=%.1f", event.ID, event.StudentID, event.Score)

	// The event is durable at this point; a failed recompute is repaired by
	// the next event or an explicit recompute.
	if _, err := s.metrics.RecomputeMetrics(ctx, event.StudentID); err != nil {
		log.Warn("metrics recompute after progress failed: student_id=%s, err=%v", event.StudentID, err)
	}

	return &event, nil
}

func (s *progressService) GetStudentProgress(ctx context.Context, studentID string) ([]models.ProgressEvent, error) {
	return s.list(ctx, models.ProgressFilter{StudentID: studentID})
}

func (s *progressService) GetRecentProgress(ctx context.Context, studentID string, limit int) ([]models.ProgressEvent, error) {
	if limit <= 0 {
		return nil, errors.NewValidationError("limit", "must be positive")
	}
	return s.list(ctx, models.ProgressFilter{StudentID: studentID, Limit: limit})
}

func (s *progressService) ListProgressBetween(ctx context.Context, studentID string, start, end time.Time) ([]models.ProgressEvent, error) {
	if end.Before(start) {
		return nil, errors.NewValidationError("period", "end is before start")
	}
	return s.list(ctx, models.ProgressFilter{StudentID: studentID, Since: &start, Until: &end})
}

func (s *progressService) list(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	log.Debug("listing progress: student_id=%s, limit=%d", filter.StudentID, filter.Limit)

	events, err := s.progressRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
