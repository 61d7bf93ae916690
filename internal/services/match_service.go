package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/matching"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
	"golang.org/x/sync/errgroup"
)

// MatchService finds study partners
type MatchService interface {
	FindStudyMatches(ctx context.Context, studentID string, prefs models.StudyPreferences) ([]models.StudyMatch, error)
	ListStudyMatches(ctx context.Context, studentID string) ([]models.StudyMatch, error)
}

type matchService struct {
	userRepo    repository.UserRepository
	metricsRepo repository.MetricsRepository
	privacyRepo repository.PrivacyRepository
	matchRepo   repository.MatchRepository
	metrics     MetricsService
	concurrency int
	now         Clock
}

// NewMatchService creates a new MatchService. At most concurrency candidate
// lookups run at once.
func NewMatchService(
	userRepo repository.UserRepository,
	metricsRepo repository.MetricsRepository,
	privacyRepo repository.PrivacyRepository,
	matchRepo repository.MatchRepository,
	metrics MetricsService,
	concurrency int,
	now Clock,
) MatchService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &matchService{
		userRepo:    userRepo,
		metricsRepo: metricsRepo,
		privacyRepo: privacyRepo,
		matchRepo:   matchRepo,
		metrics:     metrics,
		concurrency: concurrency,
		now:         orNow(now),
	}
}

func (s *matchService) FindStudyMatches(ctx context.Context, studentID string, prefs models.StudyPreferences) ([]models.StudyMatch, error) {
	log := logger.FromContext(ctx).WithPrefix("matching")
	log.Debug("finding study matches: student_id=%s, subjects=%v", studentID, prefs.Subjects)

	if len(prefs.Subjects) == 0 {
		return nil, errors.NewValidationError("subjects", "at least one subject is required")
	}

	self, err := s.metrics.GetOrCreatePerformanceMetrics(ctx, studentID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByRole(ctx, models.RoleStudent, studentID)
	if err != nil {
		log.Error("failed to list candidates: %v", err)
		return nil, errors.NewInternalError(err)
	}

	candidates, err := s.loadCandidates(ctx, users)
	if err != nil {
		log.Error("candidate scan aborted: %v", err)
		return nil, errors.NewInternalError(err)
	}

	ranked := matching.Rank(prefs, *self, candidates)
	now := s.now()
	matches := make([]models.StudyMatch, 0, len(ranked))
	for _, r := range ranked {
		matches = append(matches, models.StudyMatch{
			MatchID:            models.MatchKey(studentID, r.StudentID),
			Student1:           studentID,
			Student2:           r.StudentID,
			CommonSubjects:     r.CommonSubjects,
			CompatibilityScore: r.Score,
			StudyPreferences:   prefs,
			MatchedAt:          now,
		})
	}

	if err := s.matchRepo.SaveAll(ctx, matches); err != nil {
		log.Error("failed to store matches: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("found %d study matches among %d candidates: student_id=%s", len(matches), len(candidates), studentID)
	return matches, nil
}

// loadCandidates fetches every candidate's metrics concurrently. Candidates
// without metrics or who opted out of peer matching are left out; the result
// keeps the order of users.
func (s *matchService) loadCandidates(ctx context.Context, users []models.User) ([]matching.Candidate, error) {
	slots := make([]*matching.Candidate, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			settings, err := s.privacyRepo.Get(gctx, u.UID)
			if err != nil {
				return err
			}
			if settings != nil && !settings.DataSharing.PeerMatching {
				return nil
			}
			m, err := s.metricsRepo.Get(gctx, u.UID)
			if err != nil {
				return err
			}
			if m == nil {
				return nil
			}
			slots[i] = &matching.Candidate{StudentID: u.UID, Metrics: *m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}

func (s *matchService) ListStudyMatches(ctx context.Context, studentID string) ([]models.StudyMatch, error) {
	log := logger.FromContext(ctx).WithPrefix("matching")

	matches, err := s.matchRepo.ListByStudent(ctx, studentID)
	if err != nil {
		log.Error("failed to list matches: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return matches, nil
}
