package models

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type LearningGap struct {
	StudentID          string    `json:"student_id"`
	Subject            string    `json:"subject"`
	Topic              string    `json:"topic"`
	WeakPoints         []string  `json:"weak_points"`
	SuggestedResources []string  `json:"suggested_resources"`
	Priority           Priority  `json:"priority"`
	IdentifiedAt       time.Time `json:"identified_at"`
}

// Key is the document key of a gap: studentId-subject-topic.
func (g LearningGap) Key() string {
	return GapKey(g.StudentID, g.Subject, g.Topic)
}

func GapKey(studentID, subject, topic string) string {
	return fmt.Sprintf("%s-%s-%s", studentID, subject, topic)
}
