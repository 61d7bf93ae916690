package matching

import (
	"math"
	"sort"

	"github.com/vytor/learnpulse/internal/models"
)

const (
	subjectWeight     = 40.0
	scoreWeight       = 30.0
	consistencyWeight = 30.0

	// MinCompatibility is the lowest score worth keeping.
	MinCompatibility = 60.0
	// MaxMatches caps the matches kept per search.
	MaxMatches = 5
)

// Candidate is a potential study partner and their current metrics.
type Candidate struct {
	StudentID string
	Metrics   models.PerformanceMetrics
}

// Scored is a candidate with a computed compatibility.
type Scored struct {
	StudentID      string
	CommonSubjects []string
	Score          float64
}

// CommonSubjects returns the preferred subjects the candidate has scores in,
// in preference order.
func CommonSubjects(preferred []string, candidate models.PerformanceMetrics) []string {
	common := []string{}
	seen := make(map[string]bool, len(preferred))
	for _, s := range preferred {
		if seen[s] {
			continue
		}
		seen[s] = true
		if _, ok := candidate.SubjectScores[s]; ok {
			common = append(common, s)
		}
	}
	return common
}

// Compatibility scores how well two students fit as study partners:
// subject overlap (40) plus overall-score (30) and consistency (30)
// similarity. ok is false when they share no preferred subject.
func Compatibility(prefs models.StudyPreferences, self, candidate models.PerformanceMetrics) (common []string, score float64, ok bool) {
	common = CommonSubjects(prefs.Subjects, candidate)
	if len(common) == 0 || len(prefs.Subjects) == 0 {
		return nil, 0, false
	}

	subjectTerm := subjectWeight * (float64(len(common)) / float64(len(prefs.Subjects)))
	scoreTerm := math.Max(0, scoreWeight-math.Abs(self.OverallScore-candidate.OverallScore)) * (scoreWeight / 30)
	consistencyTerm := math.Max(0, consistencyWeight-math.Abs(self.Consistency-candidate.Consistency)) * (consistencyWeight / 30)

	return common, subjectTerm + scoreTerm + consistencyTerm, true
}

// Rank scores every candidate, drops those below MinCompatibility and
// returns the best MaxMatches in descending score order. Ties keep the
// candidates' input order.
func Rank(prefs models.StudyPreferences, self models.PerformanceMetrics, candidates []Candidate) []Scored {
	scored := []Scored{}
	for _, c := range candidates {
		common, score, ok := Compatibility(prefs, self, c.Metrics)
		if !ok || score < MinCompatibility {
			continue
		}
		scored = append(scored, Scored{StudentID: c.StudentID, CommonSubjects: common, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxMatches {
		scored = scored[:MaxMatches]
	}
	return scored
}
