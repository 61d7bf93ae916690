package gaps

import (
	"fmt"
	"time"

	"github.com/vytor/learnpulse/internal/models"
)

const (
	lowScoreThreshold = 60.0
	maxAttempts       = 2
)

// Priority maps a score to a remediation priority.
func Priority(score float64) models.Priority {
	switch {
	case score < 40:
		return models.PriorityHigh
	case score < 60:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// IsEvidence reports whether an event points at a learning gap: a failing
// score or repeated attempts.
func IsEvidence(e models.ProgressEvent) bool {
	return e.Score < lowScoreThreshold || e.Attempts > maxAttempts
}

// Detect emits one gap per (subject, topic) pair with at least one
// qualifying event. The first qualifying event in iteration order decides the
// gap's priority, weak points and suggested resources. Output order follows
// first appearance.
func Detect(studentID string, events []models.ProgressEvent, now time.Time) []models.LearningGap {
	seen := make(map[string]bool)
	gaps := []models.LearningGap{}
	for _, e := range events {
		if !IsEvidence(e) {
			continue
		}
		key := e.Subject + "\x00" + e.Topic
		if seen[key] {
			continue
		}
		seen[key] = true

		gaps = append(gaps, models.LearningGap{
			StudentID:          studentID,
			Subject:            e.Subject,
			Topic:              e.Topic,
			WeakPoints:         weakPoints(e),
			SuggestedResources: SuggestedResources(e),
			Priority:           Priority(e.Score),
			IdentifiedAt:       now,
		})
	}
	return gaps
}

func weakPoints(e models.ProgressEvent) []string {
	points := []string{e.Topic}
	if e.Score < lowScoreThreshold {
		points = append(points, fmt.Sprintf("Low score on %s (%.0f%%)", e.Topic, e.Score))
	}
	if e.Attempts > maxAttempts {
		points = append(points, fmt.Sprintf("Needed %d attempts on %s", e.Attempts, e.Topic))
	}
	return points
}

// SuggestedResources returns the four remediation suggestions for the event's
// topic at its difficulty.
func SuggestedResources(e models.ProgressEvent) []string {
	return []string{
		fmt.Sprintf("Practice %s-level exercises on %s", e.Difficulty, e.Topic),
		fmt.Sprintf("Watch video tutorials covering %s in %s", e.Topic, e.Subject),
		fmt.Sprintf("Review the %s fundamentals that %s builds on", e.Subject, e.Topic),
		fmt.Sprintf("Work through step-by-step worked examples for %s", e.Topic),
	}
}
