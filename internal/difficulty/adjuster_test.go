package difficulty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/learnpulse/internal/difficulty"
	"github.com/vytor/learnpulse/internal/models"
)

func recent(n int, score float64, attempts int) []models.ProgressEvent {
	events := make([]models.ProgressEvent, n)
	for i := range events {
		events[i] = models.ProgressEvent{Subject: "Math", Score: score, Attempts: attempts}
	}
	return events
}

func withConsistency(c float64) models.PerformanceMetrics {
	return models.PerformanceMetrics{Consistency: c}
}

func TestAdjust_InsufficientSignal(t *testing.T) {
	got := difficulty.Adjust(models.Beginner, recent(2, 100, 1), withConsistency(100))
	assert.Equal(t, models.Beginner, got)

	got = difficulty.Adjust(models.Advanced, recent(2, 0, 9), withConsistency(0))
	assert.Equal(t, models.Advanced, got)
}

func TestAdjust_TransitionTable(t *testing.T) {
	tests := []struct {
		name        string
		current     models.Difficulty
		score       float64
		attempts    int
		consistency float64
		want        models.Difficulty
	}{
		{"beginner promoted", models.Beginner, 80, 1, 70, models.Intermediate},
		{"beginner low consistency", models.Beginner, 95, 1, 69, models.Beginner},
		{"beginner too many attempts", models.Beginner, 95, 2, 90, models.Beginner},
		{"beginner never demoted", models.Beginner, 10, 5, 0, models.Beginner},
		{"intermediate promoted", models.Intermediate, 85, 1, 80, models.Advanced},
		{"intermediate high score low consistency", models.Intermediate, 95, 1, 79, models.Intermediate},
		{"intermediate demoted on score", models.Intermediate, 59, 1, 90, models.Beginner},
		{"intermediate demoted on attempts", models.Intermediate, 90, 3, 90, models.Beginner},
		{"intermediate stays", models.Intermediate, 70, 2, 60, models.Intermediate},
		{"advanced demoted on score", models.Advanced, 69, 1, 100, models.Intermediate},
		{"advanced demoted on attempts", models.Advanced, 95, 3, 100, models.Intermediate},
		{"advanced stays", models.Advanced, 70, 2, 10, models.Advanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := difficulty.Adjust(tt.current, recent(3, tt.score, tt.attempts), withConsistency(tt.consistency))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjust_UsesAveragesAcrossWindow(t *testing.T) {
	events := []models.ProgressEvent{
		{Score: 100, Attempts: 1},
		{Score: 100, Attempts: 1},
		{Score: 100, Attempts: 1},
		{Score: 40, Attempts: 2},
	}
	// avg score 85, avg attempts 1.25
	assert.Equal(t, models.Advanced, difficulty.Adjust(models.Intermediate, events, withConsistency(80)))
}

func TestRecommended(t *testing.T) {
	m := models.PerformanceMetrics{
		SubjectScores: map[string]float64{"Math": 80, "Physics": 60, "Art": 59},
		Consistency:   70,
	}
	assert.Equal(t, models.Advanced, difficulty.Recommended("Math", m))
	assert.Equal(t, models.Intermediate, difficulty.Recommended("Physics", m))
	assert.Equal(t, models.Beginner, difficulty.Recommended("Art", m))
	assert.Equal(t, models.Beginner, difficulty.Recommended("Unknown", m))

	m.Consistency = 49
	assert.Equal(t, models.Beginner, difficulty.Recommended("Physics", m))
}

func TestSpeedMultiplier(t *testing.T) {
	tests := []struct {
		overall, consistency float64
		want                 float64
	}{
		{0, 0, 0.5},
		{100, 100, 1.5},
		{85, 50, 1.3},
		{70, 50, 1.1},
		{60, 50, 1.0},
		{49, 50, 0.7},
		{75, 80, 1.3},
		{75, 39, 0.9},
	}
	for _, tt := range tests {
		got := difficulty.SpeedMultiplier(models.PerformanceMetrics{OverallScore: tt.overall, Consistency: tt.consistency})
		assert.InDelta(t, tt.want, got, 1e-9, "overall=%v consistency=%v", tt.overall, tt.consistency)
	}
}

func TestSpeedMultiplier_AlwaysInRange(t *testing.T) {
	for overall := -50.0; overall <= 150; overall += 5 {
		for consistency := -10.0; consistency <= 110; consistency += 5 {
			got := difficulty.SpeedMultiplier(models.PerformanceMetrics{OverallScore: overall, Consistency: consistency})
			assert.GreaterOrEqual(t, got, 0.5)
			assert.LessOrEqual(t, got, 1.5)
		}
	}
}

func TestStudyRecommendations(t *testing.T) {
	struggling := models.PerformanceMetrics{
		OverallScore:     45,
		Consistency:      30,
		LearningVelocity: 1,
		Weaknesses:       []string{"Math", "Physics"},
	}
	recs := difficulty.StudyRecommendations(struggling)
	assert.Len(t, recs, 4)
	assert.Contains(t, recs[0], "fundamental concepts")
	assert.Equal(t, "Spend extra practice time on: Math, Physics", recs[3])

	excelling := models.PerformanceMetrics{
		OverallScore:     92,
		Consistency:      90,
		LearningVelocity: 12,
		Strengths:        []string{"Art"},
	}
	recs = difficulty.StudyRecommendations(excelling)
	assert.Len(t, recs, 3)
	assert.Contains(t, recs[0], "excelling")
	assert.Contains(t, recs[1], "Great pace")
	assert.Equal(t, "Keep building on your strengths in: Art", recs[2])

	steady := models.PerformanceMetrics{OverallScore: 70, Consistency: 60, LearningVelocity: 5}
	assert.Empty(t, difficulty.StudyRecommendations(steady))
}
