package models

import (
	"fmt"
	"time"
)

type StudyPreferences struct {
	Subjects      []string `json:"subjects" validate:"required,min=1,dive,required"`
	StudyTimes    []string `json:"study_times"`
	GroupSize     int      `json:"group_size" validate:"gte=0"`
	LearningStyle string   `json:"learning_style"`
}

type StudyMatch struct {
	MatchID            string           `json:"match_id"`
	Student1           string           `json:"student1"`
	Student2           string           `json:"student2"`
	CommonSubjects     []string         `json:"common_subjects"`
	CompatibilityScore float64          `json:"compatibility_score"`
	StudyPreferences   StudyPreferences `json:"study_preferences"`
	MatchedAt          time.Time        `json:"matched_at"`
}

func MatchKey(studentID, candidateID string) string {
	return fmt.Sprintf("%s-%s", studentID, candidateID)
}
