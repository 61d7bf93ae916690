package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository implementation
func NewMatchRepository(db *sql.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) SaveAll(ctx context.Context, matches []models.StudyMatch) error {
	log := logger.FromContext(ctx).WithPrefix("match_repo")
	if len(matches) == 0 {
		return nil
	}
	log.Debug("saving %d study matches", len(matches))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, m := range matches {
			common, err := toJSON(nonNil(m.CommonSubjects))
			if err != nil {
				return err
			}
			prefs, err := toJSON(m.StudyPreferences)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
INSERT OR REPLACE INTO study_matches
    (match_id, student1, student2, common_subjects, compatibility_score, study_preferences, matched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, m.MatchID, m.Student1, m.Student2, common, m.CompatibilityScore, prefs, utc(m.MatchedAt)); err != nil {
				log.Error("failed to save match %s: %v", m.MatchID, err)
				return err
			}
		}
		return nil
	})
}

func (r *matchRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudyMatch, error) {
	log := logger.FromContext(ctx).WithPrefix("match_repo")
	log.Debug("listing matches: student_id=%s", studentID)

	rows, err := r.db.QueryContext(ctx, `
SELECT match_id, student1, student2, common_subjects, compatibility_score, study_preferences, matched_at
FROM study_matches
WHERE student1 = ?
ORDER BY compatibility_score DESC, matched_at DESC
`, studentID)
	if err != nil {
		log.Error("failed to list matches: %v", err)
		return nil, err
	}
	defer rows.Close()

	matches := []models.StudyMatch{}
	for rows.Next() {
		var m models.StudyMatch
		var common, prefs string
		if err := rows.Scan(&m.MatchID, &m.Student1, &m.Student2, &common, &m.CompatibilityScore, &prefs, &m.MatchedAt); err != nil {
			log.Error("failed to scan match row: %v", err)
			return nil, err
		}
		if err := fromJSON(common, &m.CommonSubjects); err != nil {
			return nil, err
		}
		if err := fromJSON(prefs, &m.StudyPreferences); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
