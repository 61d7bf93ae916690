package models

// Dashboard bundles the reads the presentation layer shows on a student's
// landing page. Metrics is nil until the student has recorded progress.
type Dashboard struct {
	StudentID string              `json:"student_id"`
	Metrics   *PerformanceMetrics `json:"metrics"`
	Progress  []ProgressEvent     `json:"progress"`
}

// DifficultyAdvice is the difficulty adjuster's answer for one subject.
type DifficultyAdvice struct {
	StudentID       string     `json:"student_id"`
	Subject         string     `json:"subject"`
	Current         Difficulty `json:"current"`
	Next            Difficulty `json:"next"`
	Recommended     Difficulty `json:"recommended"`
	PaceMultiplier  float64    `json:"pace_multiplier"`
	Recommendations []string   `json:"recommendations"`
}
