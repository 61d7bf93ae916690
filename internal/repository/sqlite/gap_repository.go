package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type gapRepository struct {
	db *sql.DB
}

// NewGapRepository creates a new GapRepository implementation
func NewGapRepository(db *sql.DB) repository.GapRepository {
	return &gapRepository{db: db}
}

// Merge overwrites the recomputed fields of each gap and preserves the
// first identification time, counting how often the gap was seen.
func (r *gapRepository) Merge(ctx context.Context, gaps []models.LearningGap) error {
	log := logger.FromContext(ctx).WithPrefix("gap_repo")
	if len(gaps) == 0 {
		return nil
	}
	log.Debug("merging %d learning gaps", len(gaps))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO learning_gaps
    (id, student_id, subject, topic, weak_points, suggested_resources, priority, identified_at, first_identified_at, times_identified)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT(id) DO UPDATE SET
    weak_points = excluded.weak_points,
    suggested_resources = excluded.suggested_resources,
    priority = excluded.priority,
    identified_at = excluded.identified_at,
    times_identified = learning_gaps.times_identified + 1
`)
		if err != nil {
			log.Error("failed to prepare gap merge: %v", err)
			return err
		}
		defer stmt.Close()

		for _, g := range gaps {
			weakPoints, err := toJSON(nonNil(g.WeakPoints))
			if err != nil {
				return err
			}
			resources, err := toJSON(nonNil(g.SuggestedResources))
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, g.Key(), g.StudentID, g.Subject, g.Topic, weakPoints, resources,
				string(g.Priority), utc(g.IdentifiedAt), utc(g.IdentifiedAt)); err != nil {
				log.Error("failed to merge gap %s: %v", g.Key(), err)
				return err
			}
		}
		return nil
	})
}

func (r *gapRepository) ListByStudent(ctx context.Context, studentID string) ([]models.LearningGap, error) {
	log := logger.FromContext(ctx).WithPrefix("gap_repo")
	log.Debug("listing gaps: student_id=%s", studentID)

	rows, err := r.db.QueryContext(ctx, `
SELECT student_id, subject, topic, weak_points, suggested_resources, priority, identified_at
FROM learning_gaps
WHERE student_id = ?
ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, first_identified_at ASC, id ASC
`, studentID)
	if err != nil {
		log.Error("failed to list gaps: %v", err)
		return nil, err
	}
	defer rows.Close()

	gaps := []models.LearningGap{}
	for rows.Next() {
		var g models.LearningGap
		var weakPoints, resources, priority string
		if err := rows.Scan(&g.StudentID, &g.Subject, &g.Topic, &weakPoints, &resources, &priority, &g.IdentifiedAt); err != nil {
			log.Error("failed to scan gap row: %v", err)
			return nil, err
		}
		if err := fromJSON(weakPoints, &g.WeakPoints); err != nil {
			return nil, err
		}
		if err := fromJSON(resources, &g.SuggestedResources); err != nil {
			return nil, err
		}
		g.Priority = models.Priority(priority)
		gaps = append(gaps, g)
	}
	log.Debug("found %d gaps", len(gaps))
	return gaps, rows.Err()
}
