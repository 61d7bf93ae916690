package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type privacyRepository struct {
	db *sql.DB
}

// NewPrivacyRepository creates a new PrivacyRepository implementation
func NewPrivacyRepository(db *sql.DB) repository.PrivacyRepository {
	return &privacyRepository{db: db}
}

func (r *privacyRepository) Get(ctx context.Context, userID string) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx).WithPrefix("privacy_repo")
	log.Debug("getting privacy settings: user_id=%s", userID)

	var s models.PrivacySettings
	var fields string
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, share_analytics, share_peer_matching, share_teacher_access,
       retain_progress_days, retain_insights_days, retain_reports_days,
       encryption_enabled, encryption_fields, last_updated
FROM privacy_settings
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.DataSharing.Analytics, &s.DataSharing.PeerMatching, &s.DataSharing.TeacherAccess,
		&s.DataRetention.ProgressDays, &s.DataRetention.InsightsDays, &s.DataRetention.ReportsDays,
		&s.Encryption.Enabled, &fields, &s.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("privacy settings not found: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get privacy settings: %v", err)
		return nil, err
	}
	if err := fromJSON(fields, &s.Encryption.Fields); err != nil {
		return nil, err
	}
	s.Encryption.Fields = nonNil(s.Encryption.Fields)
	return &s, nil
}

func (r *privacyRepository) Put(ctx context.Context, s models.PrivacySettings) error {
	log := logger.FromContext(ctx).WithPrefix("privacy_repo")
	log.Debug("storing privacy settings: user_id=%s", s.UserID)

	fields, err := toJSON(nonNil(s.Encryption.Fields))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO privacy_settings
    (user_id, share_analytics, share_peer_matching, share_teacher_access,
     retain_progress_days, retain_insights_days, retain_reports_days,
     encryption_enabled, encryption_fields, last_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.UserID, s.DataSharing.Analytics, s.DataSharing.PeerMatching, s.DataSharing.TeacherAccess,
		s.DataRetention.ProgressDays, s.DataRetention.InsightsDays, s.DataRetention.ReportsDays,
		s.Encryption.Enabled, fields, utc(s.LastUpdated))
	if err != nil {
		log.Error("failed to store privacy settings: %v", err)
	}
	return err
}
