package models

import "time"

type DataSharing struct {
	Analytics     bool `json:"analytics"`
	PeerMatching  bool `json:"peer_matching"`
	TeacherAccess bool `json:"teacher_access"`
}

// DataRetention windows are in days; zero keeps data forever.
type DataRetention struct {
	ProgressDays int `json:"progress_days" validate:"gte=0"`
	InsightsDays int `json:"insights_days" validate:"gte=0"`
	ReportsDays  int `json:"reports_days" validate:"gte=0"`
}

type EncryptionSettings struct {
	Enabled bool     `json:"enabled"`
	Fields  []string `json:"fields"`
}

// Covers reports whether field is encrypted under these settings.
func (e EncryptionSettings) Covers(field string) bool {
	return e.Enabled && contains(e.Fields, field)
}

// FieldBehavioralNotes names the report field subject to encryption.
const FieldBehavioralNotes = "behavioralNotes"

type PrivacySettings struct {
	UserID        string             `json:"user_id"`
	DataSharing   DataSharing        `json:"data_sharing"`
	DataRetention DataRetention      `json:"data_retention"`
	Encryption    EncryptionSettings `json:"encryption"`
	LastUpdated   time.Time          `json:"last_updated"`
}

// DefaultPrivacySettings are stored the first time a user's settings are read.
func DefaultPrivacySettings(userID string, now time.Time) PrivacySettings {
	return PrivacySettings{
		UserID: userID,
		DataSharing: DataSharing{
			Analytics:     true,
			PeerMatching:  true,
			TeacherAccess: true,
		},
		DataRetention: DataRetention{
			ProgressDays: 365,
			InsightsDays: 90,
			ReportsDays:  730,
		},
		Encryption: EncryptionSettings{
			Enabled: false,
			Fields:  []string{FieldBehavioralNotes},
		},
		LastUpdated: now,
	}
}

// RetentionResult counts the documents a retention sweep removed for a user.
type RetentionResult struct {
	UserID   string `json:"user_id"`
	Progress int64  `json:"progress"`
	Insights int64  `json:"insights"`
	Reports  int64  `json:"reports"`
}
