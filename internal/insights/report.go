package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/vytor/learnpulse/internal/difficulty"
	"github.com/vytor/learnpulse/internal/models"
)

const (
	// PlaceholderAttendance is reported until attendance is tracked.
	PlaceholderAttendance = 85.0
	// topicsTotal is approximated as completed topics plus this margin; no
	// curriculum size is known.
	remainingTopicsEstimate = 5
)

// Grade maps a 0-100 score onto the letter scale. Thresholds are inclusive.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "C+"
	case score >= 65:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ReportID identifies a report generated for studentID at t.
func ReportID(studentID string, t time.Time) string {
	return fmt.Sprintf("%s-%d", studentID, t.UnixMilli())
}

// BuildReport assembles a period report from the events inside period and
// the student's global metrics. Subjects are ordered by name.
func BuildReport(m models.PerformanceMetrics, events []models.ProgressEvent, period models.ReportPeriod, now time.Time) models.StudentReport {
	type acc struct {
		sum    float64
		n      int
		topics map[string]struct{}
	}
	bySubject := make(map[string]*acc)
	for _, e := range events {
		if !period.Contains(e.CompletedAt) {
			continue
		}
		a, ok := bySubject[e.Subject]
		if !ok {
			a = &acc{topics: make(map[string]struct{})}
			bySubject[e.Subject] = a
		}
		a.sum += e.Score
		a.n++
		a.topics[e.Topic] = struct{}{}
	}

	names := make([]string, 0, len(bySubject))
	for s := range bySubject {
		names = append(names, s)
	}
	sort.Strings(names)

	subjects := make([]models.SubjectReport, 0, len(names))
	for _, s := range names {
		a := bySubject[s]
		avg := a.sum / float64(a.n)
		sr := models.SubjectReport{
			Subject:         s,
			Grade:           Grade(avg),
			Score:           avg,
			TopicsCompleted: len(a.topics),
			TopicsTotal:     len(a.topics) + remainingTopicsEstimate,
			Strengths:       []string{},
			Improvements:    []string{},
		}
		if m.HasStrength(s) {
			sr.Strengths = append(sr.Strengths, fmt.Sprintf("Consistently strong results in %s", s))
		}
		if m.HasWeakness(s) {
			sr.Improvements = append(sr.Improvements, fmt.Sprintf("More practice needed in %s", s))
		}
		subjects = append(subjects, sr)
	}

	return models.StudentReport{
		ReportID:        ReportID(m.StudentID, now),
		StudentID:       m.StudentID,
		Period:          period,
		OverallGrade:    Grade(m.OverallScore),
		Subjects:        subjects,
		Attendance:      PlaceholderAttendance,
		BehavioralNotes: behavioralNotes(m),
		Recommendations: difficulty.StudyRecommendations(m),
		GeneratedAt:     now,
	}
}

func behavioralNotes(m models.PerformanceMetrics) []string {
	notes := []string{}
	switch {
	case m.Consistency >= 80:
		notes = append(notes, "Shows excellent study discipline")
	case m.Consistency < 50:
		notes = append(notes, "Would benefit from a more regular study schedule")
	}
	if m.LearningVelocity > 10 {
		notes = append(notes, "Highly engaged with learning activities")
	}
	return notes
}
