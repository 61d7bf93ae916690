package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/gaps"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// GapService detects and lists learning gaps
type GapService interface {
	IdentifyLearningGaps(ctx context.Context, studentID string) ([]models.LearningGap, error)
	ListLearningGaps(ctx context.Context, studentID string) ([]models.LearningGap, error)
}

type gapService struct {
	progressRepo repository.ProgressRepository
	gapRepo      repository.GapRepository
	now          Clock
}

// NewGapService creates a new GapService
func NewGapService(progressRepo repository.ProgressRepository, gapRepo repository.GapRepository, now Clock) GapService {
	return &gapService{progressRepo: progressRepo, gapRepo: gapRepo, now: orNow(now)}
}

// IdentifyLearningGaps returns the freshly detected gaps, not the merged
// stored documents.
func (s *gapService) IdentifyLearningGaps(ctx context.Context, studentID string) ([]models.LearningGap, error) {
	log := logger.FromContext(ctx).WithPrefix("gaps")
	log.Debug("identifying learning gaps: student_id=%s", studentID)

	events, err := s.progressRepo.List(ctx, models.ProgressFilter{StudentID: studentID})
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	detected := gaps.Detect(studentID, events, s.now())
	if err := s.gapRepo.Merge(ctx, detected); err != nil {
		log.Error("failed to store gaps: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("identified %d learning gaps: student_id=%s", len(detected), studentID)
	return detected, nil
}

func (s *gapService) ListLearningGaps(ctx context.Context, studentID string) ([]models.LearningGap, error) {
	log := logger.FromContext(ctx).WithPrefix("gaps")

	list, err := s.gapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		log.Error("failed to list gaps: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return list, nil
}
