package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
	"github.com/vytor/learnpulse/internal/repository/sqlite"
	"github.com/vytor/learnpulse/internal/testutil"
	"github.com/vytor/learnpulse/internal/vault"
)

// PipelineSuite runs the engine end to end over an in-memory database:
// progress, metrics, gaps, insights, reports, matching and retention.
type PipelineSuite struct {
	suite.Suite
	db    *sql.DB
	clock *testutil.Clock

	metricsRepo repository.MetricsRepository

	users      UserService
	progress   ProgressService
	metrics    MetricsService
	gaps       GapService
	difficulty DifficultyService
	insights   InsightService
	reports    ReportService
	matches    MatchService
	privacy    PrivacyService
	dashboard  DashboardService
}

func (s *PipelineSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.clock = testutil.NewClock(t0)
	now := s.clock.Now

	progressRepo := sqlite.NewProgressRepository(s.db)
	s.metricsRepo = sqlite.NewMetricsRepository(s.db)
	gapRepo := sqlite.NewGapRepository(s.db)
	insightRepo := sqlite.NewInsightRepository(s.db)
	reportRepo := sqlite.NewReportRepository(s.db)
	matchRepo := sqlite.NewMatchRepository(s.db)
	userRepo := sqlite.NewUserRepository(s.db)
	privacyRepo := sqlite.NewPrivacyRepository(s.db)

	v, err := vault.New(make([]byte, 32))
	s.Require().NoError(err)

	s.users = NewUserService(userRepo, now)
	s.metrics = NewMetricsService(progressRepo, s.metricsRepo, now)
	s.progress = NewProgressService(progressRepo, s.metrics, now)
	s.gaps = NewGapService(progressRepo, gapRepo, now)
	s.difficulty = NewDifficultyService(progressRepo, s.metrics, 10)
	s.insights = NewInsightService(s.metricsRepo, gapRepo, insightRepo, now)
	s.privacy = NewPrivacyService(privacyRepo, progressRepo, insightRepo, reportRepo, now)
	s.reports = NewReportService(s.metricsRepo, progressRepo, reportRepo, s.privacy, v, now)
	s.matches = NewMatchService(userRepo, s.metricsRepo, privacyRepo, matchRepo, s.metrics, 4, now)
	s.dashboard = NewDashboardService(s.metricsRepo, progressRepo)
}

func (s *PipelineSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PipelineSuite) record(subject, topic string, score float64, attempts int) {
	_, err := s.progress.RecordProgress(context.Background(), models.NewProgressEvent{
		StudentID:  "s1",
		Subject:    subject,
		Topic:      topic,
		Score:      score,
		TimeSpent:  15,
		Difficulty: models.Intermediate,
		Attempts:   attempts,
	})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
}

// seed records seven events on a single day: overall 70, physics strong,
// chemistry weak, consistency round(1/30*100) = 3.
func (s *PipelineSuite) seed() {
	s.record("math", "fractions", 35, 1)
	s.record("math", "algebra", 90, 1)
	s.record("physics", "forces", 95, 1)
	s.record("physics", "waves", 85, 1)
	s.record("math", "algebra", 80, 3)
	s.record("chemistry", "bonds", 50, 1)
	s.record("chemistry", "bonds", 55, 1)
}

func (s *PipelineSuite) TestNewStudentHasNoData() {
	ctx := context.Background()

	_, err := s.metrics.GetPerformanceMetrics(ctx, "s1")
	s.Assert().True(errors.IsNoData(err))

	list, err := s.insights.GenerateInsights(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Empty(list)

	_, err = s.reports.GenerateStudentReport(ctx, "s1", models.ReportPeriod{Start: t0.Add(-time.Hour), End: t0})
	s.Assert().True(errors.IsNoData(err))

	d, err := s.dashboard.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Nil(d.Metrics)
	s.Assert().Empty(d.Progress)

	advice, err := s.difficulty.Advise(ctx, "s1", "math", models.Intermediate)
	s.Require().NoError(err)
	s.Assert().Equal(models.Intermediate, advice.Next)
	s.Assert().Equal(models.Beginner, advice.Recommended)
}

func (s *PipelineSuite) TestRecordingMaintainsMetrics() {
	s.seed()
	ctx := context.Background()

	m, err := s.metrics.GetPerformanceMetrics(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().InDelta(70, m.OverallScore, 1e-9)
	s.Assert().Equal([]string{"physics"}, m.Strengths)
	s.Assert().Equal([]string{"chemistry"}, m.Weaknesses)
	s.Assert().Equal(7, m.LearningVelocity)
	s.Assert().Equal(3.0, m.Consistency)

	again, err := s.metrics.RecomputeMetrics(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal(m.SubjectScores, again.SubjectScores)
	s.Assert().Equal(m.OverallScore, again.OverallScore)
	s.Assert().Equal(m.Consistency, again.Consistency)

	events, err := s.progress.GetStudentProgress(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(events, 7)
	s.Assert().Equal("bonds", events[0].Topic)
	s.Assert().Equal(55.0, events[0].Score)
}

func (s *PipelineSuite) TestGapsFollowNewestEvidence() {
	s.seed()
	ctx := context.Background()

	detected, err := s.gaps.IdentifyLearningGaps(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(detected, 3)
	s.Assert().Equal("bonds", detected[0].Topic)
	s.Assert().Equal(models.PriorityMedium, detected[0].Priority)
	s.Assert().Equal("algebra", detected[1].Topic)
	s.Assert().Equal(models.PriorityLow, detected[1].Priority)
	s.Assert().Equal("fractions", detected[2].Topic)
	s.Assert().Equal(models.PriorityHigh, detected[2].Priority)
	s.Assert().Len(detected[2].SuggestedResources, 4)

	_, err = s.gaps.IdentifyLearningGaps(ctx, "s1")
	s.Require().NoError(err)

	stored, err := s.gaps.ListLearningGaps(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(stored, 3)
	s.Assert().Equal("fractions", stored[0].Topic, "stored gaps list high priority first")
}

func (s *PipelineSuite) TestInsightsUseStoredGaps() {
	s.seed()
	ctx := context.Background()
	_, err := s.gaps.IdentifyLearningGaps(ctx, "s1")
	s.Require().NoError(err)

	list, err := s.insights.GenerateInsights(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Assert().Equal(models.InsightAchievement, list[0].Type)
	s.Assert().Equal(models.InsightWeakness, list[1].Type)
	s.Assert().Contains(list[1].ActionItems[0], "bonds")
	s.Assert().Equal(models.InsightRecommendation, list[2].Type)

	batch, err := s.insights.GetInsights(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal(list, batch.Insights)
}

func (s *PipelineSuite) TestReportNotesAreSealedAtRest() {
	s.seed()
	ctx := context.Background()

	settings, err := s.privacy.GetOrCreatePrivacySettings(ctx, "s1")
	s.Require().NoError(err)
	settings.Encryption.Enabled = true
	_, err = s.privacy.UpdatePrivacySettings(ctx, "s1", *settings)
	s.Require().NoError(err)

	report, err := s.reports.GenerateStudentReport(ctx, "s1", models.ReportPeriod{Start: t0, End: s.clock.Now()})
	s.Require().NoError(err)
	s.Assert().Equal("C+", report.OverallGrade)
	s.Assert().Equal(85.0, report.Attendance)
	s.Require().Len(report.Subjects, 3)
	s.Assert().Equal("chemistry", report.Subjects[0].Subject)
	s.Assert().Equal(1, report.Subjects[0].TopicsCompleted)
	s.Assert().Equal(6, report.Subjects[0].TopicsTotal)
	s.Assert().Equal([]string{"Would benefit from a more regular study schedule"}, report.BehavioralNotes)

	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT behavioral_notes FROM reports WHERE report_id = ?`, report.ReportID).Scan(&raw)
	s.Require().NoError(err)
	s.Assert().Contains(raw, "enc:v1:")
	s.Assert().False(strings.Contains(raw, "regular study"))

	got, err := s.reports.GetReport(ctx, report.ReportID)
	s.Require().NoError(err)
	s.Assert().Equal(report.BehavioralNotes, got.BehavioralNotes)

	list, err := s.reports.ListReports(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Assert().Equal(report.BehavioralNotes, list[0].BehavioralNotes)

	_, err = s.reports.GetReport(ctx, "missing")
	s.Assert().True(errors.IsNotFound(err))
}

func (s *PipelineSuite) TestMatchingPersistsTopCandidates() {
	s.seed()
	ctx := context.Background()

	_, err := s.users.EnsureUser(ctx, "s1", models.RoleStudent, "Ana", "")
	s.Require().NoError(err)
	_, err = s.users.EnsureUser(ctx, "s2", models.RoleStudent, "Bo", "")
	s.Require().NoError(err)
	_, err = s.users.EnsureUser(ctx, "t1", models.RoleTeacher, "Teacher", "")
	s.Require().NoError(err)

	self, err := s.metrics.GetPerformanceMetrics(ctx, "s1")
	s.Require().NoError(err)
	twin := *self
	twin.StudentID = "s2"
	s.Require().NoError(s.metricsRepo.Put(ctx, twin))

	matches, err := s.matches.FindStudyMatches(ctx, "s1", models.StudyPreferences{Subjects: []string{"physics"}})
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Assert().Equal("s1-s2", matches[0].MatchID)
	s.Assert().InDelta(100, matches[0].CompatibilityScore, 1e-9)

	stored, err := s.matches.ListStudyMatches(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Len(stored, 1)
}

func (s *PipelineSuite) TestRetentionPurgesExpiredDocuments() {
	s.seed()
	ctx := context.Background()
	_, err := s.insights.GenerateInsights(ctx, "s1")
	s.Require().NoError(err)
	_, err = s.reports.GenerateStudentReport(ctx, "s1", models.ReportPeriod{Start: t0, End: s.clock.Now()})
	s.Require().NoError(err)

	s.clock.Advance(400 * 24 * time.Hour)
	res, err := s.privacy.ApplyRetention(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal(int64(7), res.Progress)
	s.Assert().Equal(int64(1), res.Insights)
	s.Assert().Equal(int64(0), res.Reports)

	events, err := s.progress.GetStudentProgress(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Empty(events)

	reports, err := s.reports.ListReports(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Len(reports, 1)
}

func (s *PipelineSuite) TestDashboardAndDifficulty() {
	s.seed()
	ctx := context.Background()

	d, err := s.dashboard.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(d.Metrics)
	s.Assert().Len(d.Progress, 7)

	advice, err := s.difficulty.Advise(ctx, "s1", "physics", models.Intermediate)
	s.Require().NoError(err)
	s.Assert().Equal("physics", advice.Subject)
	s.Assert().GreaterOrEqual(advice.PaceMultiplier, 0.5)
	s.Assert().LessOrEqual(advice.PaceMultiplier, 1.5)
	s.Assert().NotEmpty(advice.Recommendations)

	_, err = s.difficulty.Advise(ctx, "s1", "physics", "expert")
	s.Assert().True(errors.HasCode(err, errors.ErrCodeValidation))
}

func (s *PipelineSuite) TestPrivacyDefaultsAndValidation() {
	ctx := context.Background()

	settings, err := s.privacy.GetOrCreatePrivacySettings(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().True(settings.DataSharing.Analytics)
	s.Assert().Equal(90, settings.DataRetention.InsightsDays)
	s.Assert().False(settings.Encryption.Enabled)

	bad := *settings
	bad.DataRetention.ReportsDays = -1
	_, err = s.privacy.UpdatePrivacySettings(ctx, "u1", bad)
	s.Assert().True(errors.HasCode(err, errors.ErrCodeValidation))

	s.clock.Advance(time.Hour)
	upd := *settings
	upd.DataSharing.PeerMatching = false
	out, err := s.privacy.UpdatePrivacySettings(ctx, "u1", upd)
	s.Require().NoError(err)
	s.Assert().True(out.LastUpdated.Equal(t0.Add(time.Hour)))

	again, err := s.privacy.GetOrCreatePrivacySettings(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().False(again.DataSharing.PeerMatching)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}
