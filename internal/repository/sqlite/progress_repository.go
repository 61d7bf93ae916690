package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Insert(ctx context.Context, e models.ProgressEvent) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting progress event: student_id=%s, subject=%s, topic=%s", e.StudentID, e.Subject, e.Topic)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO progress (id, student_id, subject, topic, completed_at, score, time_spent, difficulty, attempts)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.StudentID, e.Subject, e.Topic, utc(e.CompletedAt), e.Score, e.TimeSpent, string(e.Difficulty), e.Attempts)
	if err != nil {
		log.Error("failed to insert progress event: %v", err)
		return err
	}
	log.Debug("progress event inserted: id=%s", e.ID)
	return nil
}

func (r *progressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: student_id=%s, subject=%s, limit=%d", filter.StudentID, filter.Subject, filter.Limit)

	query := sqlBuilder.Select(
		"id", "student_id", "subject", "topic", "completed_at", "score", "time_spent", "difficulty", "attempts",
	).From("progress").
		Where(squirrel.Eq{"student_id": filter.StudentID})

	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": utc(*filter.Since)})
	}
	if filter.Until != nil {
		query = query.Where(squirrel.LtOrEq{"completed_at": utc(*filter.Until)})
	}
	query = query.OrderBy("completed_at DESC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	events := []models.ProgressEvent{}
	for rows.Next() {
		var e models.ProgressEvent
		var difficulty string
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Subject, &e.Topic, &e.CompletedAt, &e.Score, &e.TimeSpent, &difficulty, &e.Attempts); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		e.Difficulty = models.Difficulty(difficulty)
		events = append(events, e)
	}
	log.Debug("found %d progress events", len(events))
	return events, rows.Err()
}

func (r *progressRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("deleting progress before %s: student_id=%s", cutoff.Format(time.RFC3339), studentID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM progress WHERE student_id = ? AND completed_at < ?`, studentID, utc(cutoff))
	if err != nil {
		log.Error("failed to delete progress: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
