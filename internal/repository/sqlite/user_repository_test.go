package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository/sqlite"
	"github.com/vytor/learnpulse/internal/testutil"
)

// UserRepositorySuite covers users, privacy settings and study matches.
type UserRepositorySuite struct {
	suite.Suite
	db *sql.DB
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUpsert_KeepsCreatedAt() {
	ctx := context.Background()
	repo := sqlite.NewUserRepository(s.db)

	created, err := repo.Upsert(ctx, models.User{UID: "u1", DisplayName: "Ana", Role: models.RoleStudent, CreatedAt: base})
	s.Require().NoError(err)
	s.Assert().Equal("Ana", created.DisplayName)

	updated, err := repo.Upsert(ctx, models.User{UID: "u1", DisplayName: "Ana B", Email: "a@example.com", Role: models.RoleStudent, CreatedAt: base.Add(time.Hour)})
	s.Require().NoError(err)
	s.Assert().Equal("Ana B", updated.DisplayName)
	s.Assert().Equal("a@example.com", updated.Email)
	s.Assert().True(updated.CreatedAt.Equal(base))

	missing, err := repo.Get(ctx, "u2")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *UserRepositorySuite) TestListByRole_ExcludesUID() {
	ctx := context.Background()
	repo := sqlite.NewUserRepository(s.db)

	for i, u := range []models.User{
		{UID: "s1", Role: models.RoleStudent},
		{UID: "s2", Role: models.RoleStudent},
		{UID: "t1", Role: models.RoleTeacher},
		{UID: "s3", Role: models.RoleStudent},
	} {
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Upsert(ctx, u)
		s.Require().NoError(err)
	}

	students, err := repo.ListByRole(ctx, models.RoleStudent, "s2")
	s.Require().NoError(err)
	s.Require().Len(students, 2)
	s.Assert().Equal("s1", students[0].UID)
	s.Assert().Equal("s3", students[1].UID)

	all, err := repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 4)
}

func (s *UserRepositorySuite) TestPrivacy_RoundTrip() {
	ctx := context.Background()
	repo := sqlite.NewPrivacyRepository(s.db)

	missing, err := repo.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Assert().Nil(missing)

	settings := models.DefaultPrivacySettings("u1", base)
	settings.DataSharing.PeerMatching = false
	settings.Encryption.Enabled = true
	s.Require().NoError(repo.Put(ctx, settings))

	got, err := repo.Get(ctx, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().False(got.DataSharing.PeerMatching)
	s.Assert().True(got.DataSharing.Analytics)
	s.Assert().Equal(365, got.DataRetention.ProgressDays)
	s.Assert().True(got.Encryption.Covers(models.FieldBehavioralNotes))
	s.Assert().True(got.LastUpdated.Equal(base))
}

func (s *UserRepositorySuite) TestMatches_SaveAllUpserts() {
	ctx := context.Background()
	repo := sqlite.NewMatchRepository(s.db)
	prefs := models.StudyPreferences{Subjects: []string{"math"}, GroupSize: 3}

	s.Require().NoError(repo.SaveAll(ctx, []models.StudyMatch{
		{MatchID: "s1-s2", Student1: "s1", Student2: "s2", CommonSubjects: []string{"math"}, CompatibilityScore: 70, StudyPreferences: prefs, MatchedAt: base},
		{MatchID: "s1-s3", Student1: "s1", Student2: "s3", CommonSubjects: []string{"math"}, CompatibilityScore: 90, StudyPreferences: prefs, MatchedAt: base},
	}))
	s.Require().NoError(repo.SaveAll(ctx, []models.StudyMatch{
		{MatchID: "s1-s2", Student1: "s1", Student2: "s2", CommonSubjects: []string{"math"}, CompatibilityScore: 95, StudyPreferences: prefs, MatchedAt: base.Add(time.Hour)},
	}))
	s.Require().NoError(repo.SaveAll(ctx, nil))

	matches, err := repo.ListByStudent(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Assert().Equal("s1-s2", matches[0].MatchID)
	s.Assert().Equal(95.0, matches[0].CompatibilityScore)
	s.Assert().Equal(prefs, matches[0].StudyPreferences)

	none, err := repo.ListByStudent(ctx, "s2")
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
