package model

import (
	"fmt"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

type InterviewStatus string

const (
	StatusScheduled  InterviewStatus = "scheduled"
	StatusInProgress InterviewStatus = "in-progress"
	StatusCompleted  InterviewStatus = "completed"
)

// CanTransitionTo reports whether next is a legal forward step from s.
// Transitions never skip a state and never reverse.
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

type DimensionScores struct {
	Technical      float64 `bson:"technical" json:"technical"`
	Communication  float64 `bson:"communication" json:"communication"`
	ProblemSolving float64 `bson:"problem_solving" json:"problem_solving"`
}

type Feedback struct {
	Summary      string   `bson:"summary" json:"summary"`
	Strengths    []string `bson:"strengths" json:"strengths"`
	Improvements []string `bson:"improvements" json:"improvements"`
}

type Interview struct {
	ID              string             `bson:"_id" json:"interview_id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Role            string             `bson:"role" json:"role"`
	Difficulty      Difficulty         `bson:"difficulty" json:"difficulty"`
	ScheduledAt     time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int                `bson:"duration_minutes" json:"duration_minutes"`
	Status          InterviewStatus    `bson:"status" json:"status"`
	StartedAt       *time.Time         `bson:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt         *time.Time         `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	ResumeURL       string             `bson:"resume_url" json:"resume_url"`
	OverallScore    float64            `bson:"overall_score" json:"overall_score"`
	Dimensions      *DimensionScores   `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	SkillScores     map[string]float64 `bson:"skill_scores,omitempty" json:"skill_scores,omitempty"`
	Feedback        *Feedback          `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidateForCreate checks the fields a client must supply when scheduling an
// interview. The resume artifact is checked separately because it arrives as a
// multipart upload, not a struct field.
func (i *Interview) ValidateForCreate() error {
	if i.Role == "" {
		return fmt.Errorf("role is required")
	}
	if !i.Difficulty.Valid() {
		return fmt.Errorf("difficulty must be one of easy, medium, hard, expert")
	}
	if i.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if i.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	return nil
}
