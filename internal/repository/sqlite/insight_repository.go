package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type insightRepository struct {
	db *sql.DB
}

// NewInsightRepository creates a new InsightRepository implementation
func NewInsightRepository(db *sql.DB) repository.InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Get(ctx context.Context, studentID string) (*models.InsightBatch, error) {
	log := logger.FromContext(ctx).WithPrefix("insight_repo")
	log.Debug("getting insights: student_id=%s", studentID)

	var b models.InsightBatch
	var raw string
	err := r.db.QueryRowContext(ctx, `
SELECT student_id, insights, generated_at FROM insights WHERE student_id = ?
`, studentID).Scan(&b.StudentID, &raw, &b.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("insights not found: student_id=%s", studentID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get insights: %v", err)
		return nil, err
	}
	b.Insights = []models.AnalyticsInsight{}
	if err := fromJSON(raw, &b.Insights); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *insightRepository) Put(ctx context.Context, b models.InsightBatch) error {
	log := logger.FromContext(ctx).WithPrefix("insight_repo")
	log.Debug("storing %d insights: student_id=%s", len(b.Insights), b.StudentID)

	if b.Insights == nil {
		b.Insights = []models.AnalyticsInsight{}
	}
	raw, err := toJSON(b.Insights)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO insights (student_id, insights, generated_at) VALUES (?, ?, ?)
`, b.StudentID, raw, utc(b.GeneratedAt))
	if err != nil {
		log.Error("failed to store insights: %v", err)
	}
	return err
}

func (r *insightRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("insight_repo")

	res, err := r.db.ExecContext(ctx, `DELETE FROM insights WHERE student_id = ? AND generated_at < ?`, studentID, utc(cutoff))
	if err != nil {
		log.Error("failed to delete insights: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
