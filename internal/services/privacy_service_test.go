package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/testutil"
	"github.com/vytor/learnpulse/internal/testutil/mocks"
)

type privacyFixture struct {
	privacy  *mocks.MockPrivacyRepository
	progress *mocks.MockProgressRepository
	insights *mocks.MockInsightRepository
	reports  *mocks.MockReportRepository
	svc      PrivacyService
}

func newPrivacyFixture() *privacyFixture {
	f := &privacyFixture{
		privacy:  new(mocks.MockPrivacyRepository),
		progress: new(mocks.MockProgressRepository),
		insights: new(mocks.MockInsightRepository),
		reports:  new(mocks.MockReportRepository),
	}
	f.svc = NewPrivacyService(f.privacy, f.progress, f.insights, f.reports, testutil.NewClock(t0).Now)
	return f
}

func TestGetOrCreatePrivacySettings_StoresDefaults(t *testing.T) {
	f := newPrivacyFixture()
	f.privacy.On("Get", mock.Anything, "s1").Return(nil, nil)
	f.privacy.On("Put", mock.Anything, mock.MatchedBy(func(p models.PrivacySettings) bool {
		return p.UserID == "s1" && p.DataSharing.TeacherAccess && p.DataRetention.ProgressDays == 365
	})).Return(nil)

	got, err := f.svc.GetOrCreatePrivacySettings(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, 90, got.DataRetention.InsightsDays)
	assert.False(t, got.Encryption.Enabled)
	f.privacy.AssertExpectations(t)
}

func TestUpdatePrivacySettings_RejectsUnknownEncryptedField(t *testing.T) {
	f := newPrivacyFixture()

	_, err := f.svc.UpdatePrivacySettings(context.Background(), "s1", models.PrivacySettings{
		Encryption: models.EncryptionSettings{Enabled: true, Fields: []string{"grades"}},
	})

	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	f.privacy.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestApplyRetention_UsesWindowsAndSkipsZero(t *testing.T) {
	f := newPrivacyFixture()
	settings := models.DefaultPrivacySettings("s1", t0)
	settings.DataRetention = models.DataRetention{ProgressDays: 30, InsightsDays: 0, ReportsDays: 7}
	f.privacy.On("Get", mock.Anything, "s1").Return(&settings, nil)
	f.progress.On("DeleteBefore", mock.Anything, "s1", t0.AddDate(0, 0, -30)).Return(int64(4), nil)
	f.reports.On("DeleteBefore", mock.Anything, "s1", t0.AddDate(0, 0, -7)).Return(int64(1), nil)

	res, err := f.svc.ApplyRetention(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, &models.RetentionResult{UserID: "s1", Progress: 4, Reports: 1}, res)
	f.insights.AssertNotCalled(t, "DeleteBefore", mock.Anything, mock.Anything, mock.Anything)
	f.progress.AssertExpectations(t)
	f.reports.AssertExpectations(t)
}

func TestApplyRetention_PurgeFailureIsInternal(t *testing.T) {
	f := newPrivacyFixture()
	settings := models.DefaultPrivacySettings("s1", t0)
	f.privacy.On("Get", mock.Anything, "s1").Return(&settings, nil)
	f.progress.On("DeleteBefore", mock.Anything, "s1", mock.Anything).Return(int64(0), assert.AnError)

	_, err := f.svc.ApplyRetention(context.Background(), "s1")

	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	f.reports.AssertNotCalled(t, "DeleteBefore", mock.Anything, mock.Anything, mock.Anything)
}
