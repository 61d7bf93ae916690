package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/learnpulse/internal/models"
)

const (
	StrengthThreshold = 75.0
	WeaknessThreshold = 60.0

	VelocityWindow    = 7 * 24 * time.Hour
	ConsistencyWindow = 30 * 24 * time.Hour
	consistencyDays   = 30.0

	// MinEventsForConsistency is the history size below which consistency
	// is reported as InsufficientConsistency.
	MinEventsForConsistency = 7
	InsufficientConsistency = 50.0
)

// Compute rebuilds a student's performance snapshot from the full event
// history. It is a pure function of its inputs: the same events and now
// always produce the same snapshot. ok is false when events is empty.
func Compute(studentID string, events []models.ProgressEvent, now time.Time) (m models.PerformanceMetrics, ok bool) {
	if len(events) == 0 {
		return models.PerformanceMetrics{}, false
	}

	var total float64
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range events {
		total += e.Score
		sums[e.Subject] += e.Score
		counts[e.Subject]++
	}

	subjectScores := make(map[string]float64, len(sums))
	for subject, sum := range sums {
		subjectScores[subject] = sum / float64(counts[subject])
	}

	strengths, weaknesses := classifySubjects(subjectScores)

	return models.PerformanceMetrics{
		StudentID:        studentID,
		OverallScore:     total / float64(len(events)),
		SubjectScores:    subjectScores,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		LearningVelocity: Velocity(events, now),
		Consistency:      Consistency(events, now),
		LastUpdated:      now,
	}, true
}

// classifySubjects returns strengths and weaknesses sorted by subject name.
// A subject between the two thresholds is in neither list.
func classifySubjects(scores map[string]float64) (strengths, weaknesses []string) {
	strengths = []string{}
	weaknesses = []string{}
	for subject, score := range scores {
		switch {
		case score >= StrengthThreshold:
			strengths = append(strengths, subject)
		case score < WeaknessThreshold:
			weaknesses = append(weaknesses, subject)
		}
	}
	sort.Strings(strengths)
	sort.Strings(weaknesses)
	return strengths, weaknesses
}

// Velocity counts events completed within the trailing seven days.
func Velocity(events []models.ProgressEvent, now time.Time) int {
	cutoff := now.Add(-VelocityWindow)
	n := 0
	for _, e := range events {
		if !e.CompletedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

// Consistency scores study cadence as the share of the trailing thirty days
// with at least one completed event, in [0, 100].
func Consistency(events []models.ProgressEvent, now time.Time) float64 {
	if len(events) < MinEventsForConsistency {
		return InsufficientConsistency
	}

	cutoff := now.Add(-ConsistencyWindow)
	days := make(map[string]struct{})
	for _, e := range events {
		if e.CompletedAt.Before(cutoff) {
			continue
		}
		days[e.CompletedAt.UTC().Format("2006-01-02")] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}
	return math.Round(math.Min(100, float64(len(days))/consistencyDays*100))
}
