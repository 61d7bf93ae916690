package models

import "time"

type InsightType string

const (
	InsightStrength       InsightType = "strength"
	InsightWeakness       InsightType = "weakness"
	InsightRecommendation InsightType = "recommendation"
	InsightAchievement    InsightType = "achievement"
)

type AnalyticsInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ActionItems []string    `json:"action_items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// InsightBatch is the stored set of insights for one student. Each
// generation replaces the previous batch.
type InsightBatch struct {
	StudentID   string             `json:"student_id"`
	Insights    []AnalyticsInsight `json:"insights"`
	GeneratedAt time.Time          `json:"generated_at"`
}
