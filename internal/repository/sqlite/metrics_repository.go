package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type metricsRepository struct {
	db *sql.DB
}

// NewMetricsRepository creates a new MetricsRepository implementation
func NewMetricsRepository(db *sql.DB) repository.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) Get(ctx context.Context, studentID string) (*models.PerformanceMetrics, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")
	log.Debug("getting metrics: student_id=%s", studentID)

	var m models.PerformanceMetrics
	var subjectScores, strengths, weaknesses string
	err := r.db.QueryRowContext(ctx, `
SELECT student_id, overall_score, subject_scores, strengths, weaknesses, learning_velocity, consistency, last_updated
FROM performance_metrics
WHERE student_id = ?
`, studentID).Scan(&m.StudentID, &m.OverallScore, &subjectScores, &strengths, &weaknesses, &m.LearningVelocity, &m.Consistency, &m.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("metrics not found: student_id=%s", studentID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get metrics: %v", err)
		return nil, err
	}

	m.SubjectScores = map[string]float64{}
	if err := fromJSON(subjectScores, &m.SubjectScores); err != nil {
		return nil, err
	}
	if err := fromJSON(strengths, &m.Strengths); err != nil {
		return nil, err
	}
	if err := fromJSON(weaknesses, &m.Weaknesses); err != nil {
		return nil, err
	}
	m.Strengths = nonNil(m.Strengths)
	m.Weaknesses = nonNil(m.Weaknesses)
	return &m, nil
}

// Put replaces the student's snapshot wholesale.
func (r *metricsRepository) Put(ctx context.Context, m models.PerformanceMetrics) error {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")
	log.Debug("storing metrics: student_id=%s, overall=%.2f, consistency=%.0f", m.StudentID, m.OverallScore, m.Consistency)

	subjectScores, err := toJSON(m.SubjectScores)
	if err != nil {
		return err
	}
	strengths, err := toJSON(nonNil(m.Strengths))
	if err != nil {
		return err
	}
	weaknesses, err := toJSON(nonNil(m.Weaknesses))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO performance_metrics
    (student_id, overall_score, subject_scores, strengths, weaknesses, learning_velocity, consistency, last_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, m.StudentID, m.OverallScore, subjectScores, strengths, weaknesses, m.LearningVelocity, m.Consistency, utc(m.LastUpdated))
	if err != nil {
		log.Error("failed to store metrics: %v", err)
	}
	return err
}
