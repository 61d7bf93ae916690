package models

import "time"

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// ProgressEvent is one completed learning activity. Events are append-only.
type ProgressEvent struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	Subject     string     `json:"subject"`
	Topic       string     `json:"topic"`
	CompletedAt time.Time  `json:"completed_at"`
	Score       float64    `json:"score"`
	TimeSpent   float64    `json:"time_spent"`
	Difficulty  Difficulty `json:"difficulty"`
	Attempts    int        `json:"attempts"`
}

// NewProgressEvent is the caller-supplied part of a ProgressEvent; the id and
// completion time are assigned when it is recorded.
type NewProgressEvent struct {
	StudentID  string     `json:"student_id" validate:"required"`
	Subject    string     `json:"subject" validate:"required"`
	Topic      string     `json:"topic" validate:"required"`
	Score      float64    `json:"score"`
	TimeSpent  float64    `json:"time_spent" validate:"gte=0"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Attempts   int        `json:"attempts" validate:"gte=1"`
}

type ProgressFilter struct {
	StudentID string
	Subject   string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}
