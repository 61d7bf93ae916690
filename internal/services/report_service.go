package services

import (
	"context"
	"fmt"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/insights"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
	"github.com/vytor/learnpulse/internal/vault"
)

// ReportService generates and reads period reports
type ReportService interface {
	GenerateStudentReport(ctx context.Context, studentID string, period models.ReportPeriod) (*models.StudentReport, error)
	GetReport(ctx context.Context, reportID string) (*models.StudentReport, error)
	ListReports(ctx context.Context, studentID string) ([]models.StudentReport, error)
}

type reportService struct {
	metricsRepo  repository.MetricsRepository
	progressRepo repository.ProgressRepository
	reportRepo   repository.ReportRepository
	privacy      PrivacyService
	vault        vault.Vault
	now          Clock
}

// NewReportService creates a new ReportService. Behavioral notes are stored
// sealed by v when the student's privacy settings ask for it.
func NewReportService(
	metricsRepo repository.MetricsRepository,
	progressRepo repository.ProgressRepository,
	reportRepo repository.ReportRepository,
	privacy PrivacyService,
	v vault.Vault,
	now Clock,
) ReportService {
	if v == nil {
		v = vault.Disabled{}
	}
	return &reportService{
		metricsRepo:  metricsRepo,
		progressRepo: progressRepo,
		reportRepo:   reportRepo,
		privacy:      privacy,
		vault:        v,
		now:          orNow(now),
	}
}

func (s *reportService) GenerateStudentReport(ctx context.Context, studentID string, period models.ReportPeriod) (*models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")
	log.Debug("generating report: student_id=%s, start=%s, end=%s", studentID, period.Start, period.End)

	if period.End.Before(period.Start) {
		return nil, errors.NewValidationError("period", "end is before start")
	}

	m, err := s.metricsRepo.Get(ctx, studentID)
	if err != nil {
		log.Error("failed to load metrics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if m == nil {
		return nil, errors.NewNoDataError("performance metrics", studentID)
	}

	events, err := s.progressRepo.List(ctx, models.ProgressFilter{StudentID: studentID, Since: &period.Start, Until: &period.End})
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	report := insights.BuildReport(*m, events, period, s.now())

	stored, err := s.sealForStorage(ctx, report)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Insert(ctx, stored); err != nil {
		log.Error("failed to store report: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("report generated: report_id=%s, grade=%s, subjects=%d", report.ReportID, report.OverallGrade, len(report.Subjects))
	return &report, nil
}

func (s *reportService) GetReport(ctx context.Context, reportID string) (*models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")

	report, err := s.reportRepo.Get(ctx, reportID)
	if err != nil {
		log.Error("failed to get report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if report == nil {
		return nil, errors.NewNotFoundError("report", reportID)
	}
	if err := s.open(report); err != nil {
		log.Error("failed to open report %s: %v", reportID, err)
		return nil, errors.NewInternalError(err)
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, studentID string) ([]models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")

	reports, err := s.reportRepo.ListByStudent(ctx, studentID)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range reports {
		if err := s.open(&reports[i]); err != nil {
			log.Error("failed to open report %s: %v", reports[i].ReportID, err)
			return nil, errors.NewInternalError(err)
		}
	}
	return reports, nil
}

// sealForStorage returns the copy of report that is persisted. The caller
// keeps the plaintext.
func (s *reportService) sealForStorage(ctx context.Context, report models.StudentReport) (models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("reports")

	settings, err := s.privacy.GetOrCreatePrivacySettings(ctx, report.StudentID)
	if err != nil {
		return report, err
	}
	if !settings.Encryption.Covers(models.FieldBehavioralNotes) {
		return report, nil
	}
	if !s.vault.Enabled() {
		log.Warn("encryption requested but no key configured, storing notes in plaintext: student_id=%s", report.StudentID)
		return report, nil
	}

	sealed := make([]string, len(report.BehavioralNotes))
	for i, note := range report.BehavioralNotes {
		out, err := s.vault.Seal(note)
		if err != nil {
			log.Error("failed to seal behavioral note: %v", err)
			return report, errors.NewInternalError(err)
		}
		sealed[i] = out
	}
	report.BehavioralNotes = sealed
	return report, nil
}

func (s *reportService) open(report *models.StudentReport) error {
	for i, note := range report.BehavioralNotes {
		if !vault.IsSealed(note) {
			continue
		}
		plain, err := s.vault.Open(note)
		if err != nil {
			return fmt.Errorf("behavioral note %d: %w", i, err)
		}
		report.BehavioralNotes[i] = plain
	}
	return nil
}
