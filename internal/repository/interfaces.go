package repository

import (
	"context"
	"time"

	"github.com/vytor/learnpulse/internal/models"
)

// Lookups that find nothing return (nil, nil); only store failures are errors.

// ProgressRepository handles the append-only progress collection
type ProgressRepository interface {
	Insert(ctx context.Context, event models.ProgressEvent) error
	// List returns matching events ordered by completion time, newest first.
	List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressEvent, error)
	DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error)
}

// MetricsRepository holds one performance snapshot per student
type MetricsRepository interface {
	Get(ctx context.Context, studentID string) (*models.PerformanceMetrics, error)
	Put(ctx context.Context, metrics models.PerformanceMetrics) error
}

// GapRepository handles learning gap data access
type GapRepository interface {
	// Merge upserts gaps by key, keeping fields the new values do not carry.
	Merge(ctx context.Context, gaps []models.LearningGap) error
	ListByStudent(ctx context.Context, studentID string) ([]models.LearningGap, error)
}

// InsightRepository stores the latest insight batch per student
type InsightRepository interface {
	Get(ctx context.Context, studentID string) (*models.InsightBatch, error)
	Put(ctx context.Context, batch models.InsightBatch) error
	DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error)
}

// ReportRepository handles generated report data access
type ReportRepository interface {
	Insert(ctx context.Context, report models.StudentReport) error
	Get(ctx context.Context, reportID string) (*models.StudentReport, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentReport, error)
	DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error)
}

// MatchRepository handles study match data access
type MatchRepository interface {
	SaveAll(ctx context.Context, matches []models.StudyMatch) error
	ListByStudent(ctx context.Context, studentID string) ([]models.StudyMatch, error)
}

// UserRepository handles user profile data access
type UserRepository interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	Upsert(ctx context.Context, user models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role, excludeUID string) ([]models.User, error)
}

// PrivacyRepository handles privacy settings data access
type PrivacyRepository interface {
	Get(ctx context.Context, userID string) (*models.PrivacySettings, error)
	Put(ctx context.Context, settings models.PrivacySettings) error
}
