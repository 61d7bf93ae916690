package insights

import (
	"fmt"
	"time"

	"github.com/vytor/learnpulse/internal/models"
)

var genericWeaknessActions = []string{
	"Review the core concepts of this subject",
	"Practice with additional exercises",
	"Ask a teacher or study partner for help",
}

// Generate derives a student's insights from their metrics and known gaps:
// an achievement per strength, a weakness per weak subject, and
// recommendations for irregular or slow study.
func Generate(m models.PerformanceMetrics, gaps []models.LearningGap, now time.Time) []models.AnalyticsInsight {
	out := []models.AnalyticsInsight{}

	for _, subject := range m.Strengths {
		out = append(out, models.AnalyticsInsight{
			Type:        models.InsightAchievement,
			Title:       fmt.Sprintf("Strong performance in %s", subject),
			Description: fmt.Sprintf("You're averaging %.1f%% in %s. Keep up the great work!", m.SubjectScore(subject), subject),
			ActionItems: []string{
				fmt.Sprintf("Try advanced %s topics", subject),
				fmt.Sprintf("Help classmates who are learning %s", subject),
			},
			CreatedAt: now,
		})
	}

	for _, subject := range m.Weaknesses {
		out = append(out, models.AnalyticsInsight{
			Type:        models.InsightWeakness,
			Title:       fmt.Sprintf("Needs improvement in %s", subject),
			Description: fmt.Sprintf("Your average in %s is %.1f%%. Focused practice will help close the gap.", subject, m.SubjectScore(subject)),
			ActionItems: weaknessActions(subject, gaps),
			CreatedAt:   now,
		})
	}

	if m.Consistency < 50 {
		out = append(out, models.AnalyticsInsight{
			Type:        models.InsightRecommendation,
			Title:       "Build a consistent study routine",
			Description: fmt.Sprintf("Your consistency score is %.0f%%. Regular short sessions beat occasional long ones.", m.Consistency),
			ActionItems: []string{
				"Set a fixed daily study time",
				"Start with 15-minute sessions",
				"Track your streak",
			},
			CreatedAt: now,
		})
	}

	if m.LearningVelocity < 3 {
		out = append(out, models.AnalyticsInsight{
			Type:        models.InsightRecommendation,
			Title:       "Increase your learning pace",
			Description: fmt.Sprintf("You completed %d activities in the last 7 days.", m.LearningVelocity),
			ActionItems: []string{
				"Set a goal of at least 3 activities per week",
				"Break large topics into smaller lessons",
			},
			CreatedAt: now,
		})
	}

	return out
}

// weaknessActions uses the suggested resources of the first gap recorded for
// subject, or a generic plan when there is none.
func weaknessActions(subject string, gaps []models.LearningGap) []string {
	for _, g := range gaps {
		if g.Subject == subject {
			return append([]string(nil), g.SuggestedResources...)
		}
	}
	return append([]string(nil), genericWeaknessActions...)
}
