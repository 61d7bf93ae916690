package services

import (
	"context"
	"time"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// PrivacyService manages per-user privacy settings and data retention
type PrivacyService interface {
	GetOrCreatePrivacySettings(ctx context.Context, userID string) (*models.PrivacySettings, error)
	UpdatePrivacySettings(ctx context.Context, userID string, settings models.PrivacySettings) (*models.PrivacySettings, error)
	ApplyRetention(ctx context.Context, userID string) (*models.RetentionResult, error)
}

type privacyService struct {
	privacyRepo  repository.PrivacyRepository
	progressRepo repository.ProgressRepository
	insightRepo  repository.InsightRepository
	reportRepo   repository.ReportRepository
	now          Clock
}

// NewPrivacyService creates a new PrivacyService
func NewPrivacyService(
	privacyRepo repository.PrivacyRepository,
	progressRepo repository.ProgressRepository,
	insightRepo repository.InsightRepository,
	reportRepo repository.ReportRepository,
	now Clock,
) PrivacyService {
	return &privacyService{
		privacyRepo:  privacyRepo,
		progressRepo: progressRepo,
		insightRepo:  insightRepo,
		reportRepo:   reportRepo,
		now:          orNow(now),
	}
}

// GetOrCreatePrivacySettings stores the defaults on first read.
func (s *privacyService) GetOrCreatePrivacySettings(ctx context.Context, userID string) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx).WithPrefix("privacy")

	settings, err := s.privacyRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get privacy settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if settings != nil {
		return settings, nil
	}

	defaults := models.DefaultPrivacySettings(userID, s.now())
	if err := s.privacyRepo.Put(ctx, defaults); err != nil {
		log.Error("failed to store default privacy settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("created default privacy settings: user_id=%s", userID)
	return &defaults, nil
}

func (s *privacyService) UpdatePrivacySettings(ctx context.Context, userID string, settings models.PrivacySettings) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx).WithPrefix("privacy")
	log.Debug("updating privacy settings: user_id=%s", userID)

	r := settings.DataRetention
	if r.ProgressDays < 0 || r.InsightsDays < 0 || r.ReportsDays < 0 {
		return nil, errors.NewValidationError("data_retention", "days cannot be negative")
	}
	for _, f := range settings.Encryption.Fields {
		if f != models.FieldBehavioralNotes {
			return nil, errors.NewValidationError("encryption.fields", "unsupported field "+f)
		}
	}

	settings.UserID = userID
	settings.LastUpdated = s.now()
	if settings.Encryption.Fields == nil {
		settings.Encryption.Fields = []string{}
	}
	if err := s.privacyRepo.Put(ctx, settings); err != nil {
		log.Error("failed to store privacy settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("privacy settings updated: user_id=%s", userID)
	return &settings, nil
}

// ApplyRetention deletes the user's documents older than their retention
// windows. A zero window keeps everything.
func (s *privacyService) ApplyRetention(ctx context.Context, userID string) (*models.RetentionResult, error) {
	log := logger.FromContext(ctx).WithPrefix("privacy")

	settings, err := s.GetOrCreatePrivacySettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := &models.RetentionResult{UserID: userID}
	steps := []struct {
		name  string
		days  int
		purge func(context.Context, string, time.Time) (int64, error)
		count *int64
	}{
		{"progress", settings.DataRetention.ProgressDays, s.progressRepo.DeleteBefore, &res.Progress},
		{"insights", settings.DataRetention.InsightsDays, s.insightRepo.DeleteBefore, &res.Insights},
		{"reports", settings.DataRetention.ReportsDays, s.reportRepo.DeleteBefore, &res.Reports},
	}
	for _, step := range steps {
		if step.days <= 0 {
			continue
		}
		cutoff := now.AddDate(0, 0, -step.days)
		n, err := step.purge(ctx, userID, cutoff)
		if err != nil {
			log.Error("failed to purge %s: user_id=%s, err=%v", step.name, userID, err)
			return nil, errors.NewInternalError(err)
		}
		*step.count = n
	}

	log.Info("retention applied: user_id=%s, progress=%d, insights=%d, reports=%d", userID, res.Progress, res.Insights, res.Reports)
	return res, nil
}
