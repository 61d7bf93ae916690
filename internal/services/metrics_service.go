package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/metrics"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// MetricsService maintains the per-student performance snapshot
type MetricsService interface {
	RecomputeMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error)
	// GetPerformanceMetrics never writes; it returns a NO_DATA error when no
	// snapshot exists yet.
	GetPerformanceMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error)
	GetOrCreatePerformanceMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error)
}

type metricsService struct {
	progressRepo repository.ProgressRepository
	metricsRepo  repository.MetricsRepository
	now          Clock
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(progressRepo repository.ProgressRepository, metricsRepo repository.MetricsRepository, now Clock) MetricsService {
	return &metricsService{progressRepo: progressRepo, metricsRepo: metricsRepo, now: orNow(now)}
}

func (s *metricsService) RecomputeMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics")
	log.Debug("recomputing metrics: student_id=%s", studentID)

	events, err := s.progressRepo.List(ctx, models.ProgressFilter{StudentID: studentID})
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	m, ok := metrics.Compute(studentID, events, s.now())
	if !ok {
		log.Debug("no progress yet, metrics not written: student_id=%s", studentID)
		return nil, errors.NewNoDataError("performance metrics", studentID)
	}

	if err := s.metricsRepo.Put(ctx, m); err != nil {
		log.Error("failed to store metrics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("metrics recomputed: student_id=%s, events=%d, overall=%.2f", studentID, len(events), m.OverallScore)
	return &m, nil
}

func (s *metricsService) GetPerformanceMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics")

	m, err := s.metricsRepo.Get(ctx, studentID)
	if err != nil {
		log.Error("failed to get metrics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if m == nil {
		return nil, errors.NewNoDataError("performance metrics", studentID)
	}
	return m, nil
}

func (s *metricsService) GetOrCreatePerformanceMetrics(ctx context.Context, studentID string) (*models.PerformanceMetrics, error) {
	m, err := s.GetPerformanceMetrics(ctx, studentID)
	if errors.IsNoData(err) {
		logger.FromContext(ctx).WithPrefix("metrics").Debug("materializing metrics on demand: student_id=%s", studentID)
		return s.RecomputeMetrics(ctx, studentID)
	}
	return m, err
}
