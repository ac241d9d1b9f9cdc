package model

// Aggregate views computed on read. None of these are persisted.

type SkillScore struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"`
}

type ProgressAnalytics struct {
	TotalInterviews int          `json:"total_interviews"`
	AverageScore    float64      `json:"average_score"`
	Consistency     float64      `json:"consistency"`
	Improvement     float64      `json:"improvement"`
	Trend           string       `json:"trend"` // improving | declining | neutral
	StreakDays      int          `json:"streak_days"`
	Strengths       []SkillScore `json:"strengths"`
	WeakAreas       []SkillScore `json:"weak_areas"`
}

type ReadinessComponents struct {
	Practice    float64 `json:"practice"`
	Score       float64 `json:"score"`
	Consistency float64 `json:"consistency"`
	Coverage    float64 `json:"coverage"`
	Improvement float64 `json:"improvement"`
}

type ReadinessReport struct {
	Score           int                 `json:"score"`
	Level           string              `json:"level"`
	Components      ReadinessComponents `json:"components"`
	Recommendations []string            `json:"recommendations"`
}

type LeaderboardEntry struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name,omitempty"`
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"`
	Percentile     int     `json:"percentile"`
	Interviews     int     `json:"interviews"`
}
