package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardService bundles the landing page reads
type DashboardService interface {
	Get(ctx context.Context, studentID string) (*models.Dashboard, error)
}

type dashboardService struct {
	metricsRepo  repository.MetricsRepository
	progressRepo repository.ProgressRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(metricsRepo repository.MetricsRepository, progressRepo repository.ProgressRepository) DashboardService {
	return &dashboardService{metricsRepo: metricsRepo, progressRepo: progressRepo}
}

func (s *dashboardService) Get(ctx context.Context, studentID string) (*models.Dashboard, error) {
	log := logger.FromContext(ctx).WithPrefix("dashboard")
	log.Debug("loading dashboard: student_id=%s", studentID)

	d := &models.Dashboard{StudentID: studentID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.metricsRepo.Get(gctx, studentID)
		if err != nil {
			return err
		}
		d.Metrics = m
		return nil
	})
	g.Go(func() error {
		events, err := s.progressRepo.List(gctx, models.ProgressFilter{StudentID: studentID})
		if err != nil {
			return err
		}
		d.Progress = events
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return d, nil
}
