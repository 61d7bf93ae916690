package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/difficulty"
	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// DifficultyService advises the next difficulty level for a subject
type DifficultyService interface {
	Advise(ctx context.Context, studentID, subject string, current models.Difficulty) (*models.DifficultyAdvice, error)
}

type difficultyService struct {
	progressRepo repository.ProgressRepository
	metrics      MetricsService
	window       int
}

// NewDifficultyService creates a new DifficultyService. window is how many
// recent events feed the adjuster.
func NewDifficultyService(progressRepo repository.ProgressRepository, metrics MetricsService, window int) DifficultyService {
	if window < difficulty.MinRecentEvents {
		window = 10
	}
	return &difficultyService{progressRepo: progressRepo, metrics: metrics, window: window}
}

func (s *difficultyService) Advise(ctx context.Context, studentID, subject string, current models.Difficulty) (*models.DifficultyAdvice, error) {
	log := logger.FromContext(ctx).WithPrefix("difficulty")
	log.Debug("advising difficulty: student_id=%s, subject=%s, current=%s", studentID, subject, current)

	if !current.Valid() {
		return nil, errors.NewValidationError("current", "must be beginner, intermediate or advanced")
	}

	recent, err := s.progressRepo.List(ctx, models.ProgressFilter{StudentID: studentID, Subject: subject, Limit: s.window})
	if err != nil {
		log.Error("failed to load recent progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// A student without history is advised from empty metrics.
	m := models.PerformanceMetrics{StudentID: studentID, SubjectScores: map[string]float64{}}
	stored, err := s.metrics.GetOrCreatePerformanceMetrics(ctx, studentID)
	switch {
	case err == nil:
		m = *stored
	case !errors.IsNoData(err):
		return nil, err
	}

	advice := &models.DifficultyAdvice{
		StudentID:       studentID,
		Subject:         subject,
		Current:         current,
		Next:            difficulty.Adjust(current, recent, m),
		Recommended:     difficulty.Recommended(subject, m),
		PaceMultiplier:  difficulty.SpeedMultiplier(m),
		Recommendations: difficulty.StudyRecommendations(m),
	}
	log.Debug("difficulty advice: next=%s, recommended=%s, pace=%.2f", advice.Next, advice.Recommended, advice.PaceMultiplier)
	return advice, nil
}
