package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/insights"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// InsightService generates and reads analytics insights
type InsightService interface {
	GenerateInsights(ctx context.Context, studentID string) ([]models.AnalyticsInsight, error)
	GetInsights(ctx context.Context, studentID string) (*models.InsightBatch, error)
}

type insightService struct {
	metricsRepo repository.MetricsRepository
	gapRepo     repository.GapRepository
	insightRepo repository.InsightRepository
	now         Clock
}

// NewInsightService creates a new InsightService
func NewInsightService(metricsRepo repository.MetricsRepository, gapRepo repository.GapRepository, insightRepo repository.InsightRepository, now Clock) InsightService {
	return &insightService{metricsRepo: metricsRepo, gapRepo: gapRepo, insightRepo: insightRepo, now: orNow(now)}
}

// GenerateInsights returns an empty list, and stores nothing, for a student
// without metrics.
func (s *insightService) GenerateInsights(ctx context.Context, studentID string) ([]models.AnalyticsInsight, error) {
	log := logger.FromContext(ctx).WithPrefix("insights")
	log.Debug("generating insights: student_id=%s", studentID)

	m, err := s.metricsRepo.Get(ctx, studentID)
	if err != nil {
		log.Error("failed to load metrics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if m == nil {
		log.Debug("no metrics yet, no insights: student_id=%s", studentID)
		return []models.AnalyticsInsight{}, nil
	}

	storedGaps, err := s.gapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		log.Error("failed to load gaps: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	list := insights.Generate(*m, storedGaps, now)
	if err := s.insightRepo.Put(ctx, models.InsightBatch{StudentID: studentID, Insights: list, GeneratedAt: now}); err != nil {
		log.Error("failed to store insights: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("generated %d insights: student_id=%s", len(list), studentID)
	return list, nil
}

func (s *insightService) GetInsights(ctx context.Context, studentID string) (*models.InsightBatch, error) {
	log := logger.FromContext(ctx).WithPrefix("insights")

	batch, err := s.insightRepo.Get(ctx, studentID)
	if err != nil {
		log.Error("failed to get insights: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if batch == nil {
		return nil, errors.NewNoDataError("insights", studentID)
	}
	return batch, nil
}
