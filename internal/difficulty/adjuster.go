package difficulty

import (
	"fmt"
	"strings"

	"github.com/vytor/learnpulse/internal/models"
)

// MinRecentEvents is the smallest window that can move a student's level.
const MinRecentEvents = 3

const (
	minMultiplier = 0.5
	maxMultiplier = 1.5
)

// Adjust decides the next difficulty level from recent events and the
// student's current metrics. At most one transition happens per call.
func Adjust(current models.Difficulty, recent []models.ProgressEvent, m models.PerformanceMetrics) models.Difficulty {
	if len(recent) < MinRecentEvents {
		return current
	}

	var scoreSum float64
	var attemptSum int
	for _, e := range recent {
		scoreSum += e.Score
		attemptSum += e.Attempts
	}
	avgScore := scoreSum / float64(len(recent))
	avgAttempts := float64(attemptSum) / float64(len(recent))

	switch current {
	case models.Beginner:
		if avgScore >= 80 && avgAttempts <= 1.5 && m.Consistency >= 70 {
			return models.Intermediate
		}
	case models.Intermediate:
		if avgScore >= 85 && avgAttempts <= 1.3 && m.Consistency >= 80 {
			return models.Advanced
		}
		if avgScore < 60 || avgAttempts > 2.5 {
			return models.Beginner
		}
	case models.Advanced:
		if avgScore < 70 || avgAttempts > 2 {
			return models.Intermediate
		}
	}
	return current
}

// Recommended picks a starting level for subject. Unscored subjects count as 0.
func Recommended(subject string, m models.PerformanceMetrics) models.Difficulty {
	score := m.SubjectScore(subject)
	switch {
	case score >= 80 && m.Consistency >= 70:
		return models.Advanced
	case score >= 60 && m.Consistency >= 50:
		return models.Intermediate
	default:
		return models.Beginner
	}
}

// SpeedMultiplier scales the learning pace, always within [0.5, 1.5].
func SpeedMultiplier(m models.PerformanceMetrics) float64 {
	mult := 1.0

	switch {
	case m.OverallScore >= 85:
		mult += 0.3
	case m.OverallScore >= 70:
		mult += 0.1
	case m.OverallScore < 50:
		mult -= 0.3
	}

	switch {
	case m.Consistency >= 80:
		mult += 0.2
	case m.Consistency < 40:
		mult -= 0.2
	}

	if mult < minMultiplier {
		return minMultiplier
	}
	if mult > maxMultiplier {
		return maxMultiplier
	}
	return mult
}

// StudyRecommendations returns study tips in a fixed order.
func StudyRecommendations(m models.PerformanceMetrics) []string {
	recs := []string{}

	if m.OverallScore < 60 {
		recs = append(recs, "Focus on reviewing fundamental concepts before moving on to new topics")
	}
	if m.OverallScore >= 85 {
		recs = append(recs, "You're excelling! Consider taking on more challenging material")
	}
	if m.Consistency < 50 {
		recs = append(recs, "Try to study a little every day to build a consistent routine")
	}
	if m.LearningVelocity < 3 {
		recs = append(recs, "Aim to complete at least 3 activities per week to keep your momentum")
	}
	if m.LearningVelocity > 10 {
		recs = append(recs, "Great pace! Schedule short breaks so new material has time to settle")
	}
	if len(m.Weaknesses) > 0 {
		recs = append(recs, fmt.Sprintf("Spend extra practice time on: %s", strings.Join(m.Weaknesses, ", ")))
	}
	if len(m.Strengths) > 0 {
		recs = append(recs, fmt.Sprintf("Keep building on your strengths in: %s", strings.Join(m.Strengths, ", ")))
	}
	return recs
}
