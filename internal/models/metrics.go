package models

import "time"

type PerformanceMetrics struct {
	StudentID        string             `json:"student_id"`
	OverallScore     float64            `json:"overall_score"`
	SubjectScores    map[string]float64 `json:"subject_scores"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	LearningVelocity int                `json:"learning_velocity"`
	Consistency      float64            `json:"consistency"`
	LastUpdated      time.Time          `json:"last_updated"`
}

// SubjectScore returns the student's score for subject, or 0 when unscored.
func (m PerformanceMetrics) SubjectScore(subject string) float64 {
	return m.SubjectScores[subject]
}

// HasStrength reports whether subject is listed among the strengths.
func (m PerformanceMetrics) HasStrength(subject string) bool {
	return contains(m.Strengths, subject)
}

// HasWeakness reports whether subject is listed among the weaknesses.
func (m PerformanceMetrics) HasWeakness(subject string) bool {
	return contains(m.Weaknesses, subject)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
