package insights_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnpulse/internal/insights"
	"github.com/vytor/learnpulse/internal/models"
)

var now = time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

func TestGenerate_AchievementsAndWeaknesses(t *testing.T) {
	m := models.PerformanceMetrics{
		StudentID:        "s1",
		SubjectScores:    map[string]float64{"Math": 90, "Physics": 45, "Art": 50},
		Strengths:        []string{"Math"},
		Weaknesses:       []string{"Art", "Physics"},
		Consistency:      75,
		LearningVelocity: 5,
	}
	gaps := []models.LearningGap{
		{Subject: "Physics", Topic: "Optics", SuggestedResources: []string{"r1", "r2", "r3", "r4"}},
		{Subject: "Physics", Topic: "Waves", SuggestedResources: []string{"other"}},
	}

	got := insights.Generate(m, gaps, now)
	require.Len(t, got, 3)

	assert.Equal(t, models.InsightAchievement, got[0].Type)
	assert.Contains(t, got[0].Title, "Math")

	assert.Equal(t, models.InsightWeakness, got[1].Type)
	assert.Contains(t, got[1].Title, "Art")
	assert.Len(t, got[1].ActionItems, 3, "no gap for Art falls back to the generic plan")

	assert.Equal(t, models.InsightWeakness, got[2].Type)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, got[2].ActionItems, "first matching gap supplies the actions")

	for _, in := range got {
		assert.Equal(t, now, in.CreatedAt)
	}
}

func TestGenerate_Recommendations(t *testing.T) {
	m := models.PerformanceMetrics{Consistency: 49, LearningVelocity: 2}

	got := insights.Generate(m, nil, now)
	require.Len(t, got, 2)
	assert.Equal(t, models.InsightRecommendation, got[0].Type)
	assert.Contains(t, got[0].Title, "consistent")
	assert.Equal(t, models.InsightRecommendation, got[1].Type)
	assert.Contains(t, got[1].Description, "2 activities")
}

func TestGenerate_NothingToSay(t *testing.T) {
	m := models.PerformanceMetrics{Consistency: 50, LearningVelocity: 3}
	got := insights.Generate(m, nil, now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
