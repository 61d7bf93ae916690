package metrics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnpulse/internal/metrics"
	"github.com/vytor/learnpulse/internal/models"
)

var now = time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

func event(subject string, score float64, age time.Duration) models.ProgressEvent {
	return models.ProgressEvent{
		StudentID:   "s1",
		Subject:     subject,
		Topic:       subject + "-topic",
		Score:       score,
		Attempts:    1,
		Difficulty:  models.Beginner,
		CompletedAt: now.Add(-age),
	}
}

func TestCompute_EmptyHistory(t *testing.T) {
	_, ok := metrics.Compute("s1", nil, now)
	assert.False(t, ok)
}

func TestCompute_OverallScoreIsMean(t *testing.T) {
	scores := []float64{12.5, 99, 73.3, 0, 100, 41.7, 66.6, 88.8}
	var events []models.ProgressEvent
	var sum float64
	for i, s := range scores {
		events = append(events, event(fmt.Sprintf("sub%d", i%3), s, time.Duration(i)*time.Hour))
		sum += s
	}

	m, ok := metrics.Compute("s1", events, now)
	require.True(t, ok)
	assert.InDelta(t, sum/float64(len(scores)), m.OverallScore, 1e-9)
	assert.Equal(t, "s1", m.StudentID)
	assert.Equal(t, now, m.LastUpdated)
}

func TestCompute_SubjectScoresAndClassification(t *testing.T) {
	events := []models.ProgressEvent{
		event("Math", 90, time.Hour),
		event("Math", 80, 2*time.Hour),
		event("Physics", 50, 3*time.Hour),
		event("Physics", 60, 4*time.Hour),
		event("History", 70, 5*time.Hour),
		event("Art", 75, 6*time.Hour),
	}

	m, ok := metrics.Compute("s1", events, now)
	require.True(t, ok)

	assert.InDelta(t, 85, m.SubjectScores["Math"], 1e-9)
	assert.InDelta(t, 55, m.SubjectScores["Physics"], 1e-9)
	assert.InDelta(t, 70, m.SubjectScores["History"], 1e-9)
	assert.Equal(t, []string{"Art", "Math"}, m.Strengths, "75 is inclusive")
	assert.Equal(t, []string{"Physics"}, m.Weaknesses)
	assert.False(t, m.HasStrength("History"))
	assert.False(t, m.HasWeakness("History"))
}

func TestVelocity_TrailingSevenDays(t *testing.T) {
	events := []models.ProgressEvent{
		event("Math", 50, 0),
		event("Math", 50, 6*24*time.Hour),
		event("Math", 50, 7*24*time.Hour),
		event("Math", 50, 7*24*time.Hour+time.Minute),
		event("Math", 50, 20*24*time.Hour),
	}
	assert.Equal(t, 3, metrics.Velocity(events, now))
}

func TestConsistency_InsufficientHistory(t *testing.T) {
	for n := 1; n < 7; n++ {
		var events []models.ProgressEvent
		for i := 0; i < n; i++ {
			events = append(events, event("Math", 80, time.Duration(i)*24*time.Hour))
		}
		assert.Equal(t, 50.0, metrics.Consistency(events, now), "n=%d", n)
	}
}

func TestConsistency_NothingInWindow(t *testing.T) {
	var events []models.ProgressEvent
	for i := 0; i < 8; i++ {
		events = append(events, event("Math", 80, time.Duration(40+i)*24*time.Hour))
	}
	assert.Equal(t, 0.0, metrics.Consistency(events, now))
}

func TestConsistency_DistinctDays(t *testing.T) {
	var events []models.ProgressEvent
	// 10 distinct days, two events each.
	for d := 0; d < 10; d++ {
		events = append(events, event("Math", 80, time.Duration(d)*24*time.Hour))
		events = append(events, event("Math", 80, time.Duration(d)*24*time.Hour+time.Hour))
	}
	// 10/30*100 = 33.33 -> 33
	assert.Equal(t, 33.0, metrics.Consistency(events, now))
}

func TestConsistency_CappedAt100(t *testing.T) {
	var events []models.ProgressEvent
	for d := 0; d < 30; d++ {
		events = append(events, event("Math", 80, time.Duration(d)*24*time.Hour))
	}
	c := metrics.Consistency(events, now)
	assert.LessOrEqual(t, c, 100.0)
	assert.GreaterOrEqual(t, c, 0.0)
}

func TestCompute_IsIdempotent(t *testing.T) {
	events := []models.ProgressEvent{
		event("Math", 90, time.Hour),
		event("Physics", 40, 30*time.Hour),
		event("Chemistry", 65, 50*time.Hour),
	}

	first, _ := metrics.Compute("s1", events, now)
	second, _ := metrics.Compute("s1", events, now.Add(time.Minute))

	second.LastUpdated = first.LastUpdated
	assert.Equal(t, first, second)
}
