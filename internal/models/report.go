package models

import "time"

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the closed interval [Start, End].
func (p ReportPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

type SubjectReport struct {
	Subject         string   `json:"subject"`
	Grade           string   `json:"grade"`
	Score           float64  `json:"score"`
	TopicsCompleted int      `json:"topics_completed"`
	TopicsTotal     int      `json:"topics_total"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

type StudentReport struct {
	ReportID        string          `json:"report_id"`
	StudentID       string          `json:"student_id"`
	Period          ReportPeriod    `json:"period"`
	OverallGrade    string          `json:"overall_grade"`
	Subjects        []SubjectReport `json:"subjects"`
	Attendance      float64         `json:"attendance"`
	BehavioralNotes []string        `json:"behavioral_notes"`
	Recommendations []string        `json:"recommendations"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
