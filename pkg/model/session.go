package model

import "time"

type Speaker string

const (
	SpeakerAI   Speaker = "ai"
	SpeakerUser Speaker = "user"
)

type TurnType string

const (
	TurnGreeting TurnType = "greeting"
	TurnQuestion TurnType = "question"
	TurnAnswer   TurnType = "answer"
	TurnClosing  TurnType = "closing"
)

// Turn is one entry in the conversation transcript. The transcript is
// append-only; entries are kept in timestamp order.
type Turn struct {
	Speaker   Speaker   `bson:"speaker" json:"speaker"`
	Type      TurnType  `bson:"type" json:"type"`
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Evaluation holds the per-question assessment produced during an interview.
type Evaluation struct {
	Question string  `bson:"question" json:"question"`
	Answer   string  `bson:"answer" json:"answer"`
	Skill    string  `bson:"skill,omitempty" json:"skill,omitempty"`
	Score    float64 `bson:"score" json:"score"`
	Feedback string  `bson:"feedback" json:"feedback"`
}

// InterviewSession is the live transcript record paired with one interview
// attempt. It is created when the interview starts and removed when the parent
// interview is deleted.
type InterviewSession struct {
	ID           string           `bson:"_id" json:"session_id"`
	InterviewID  string           `bson:"interview_id" json:"interview_id"`
	UserID       string           `bson:"user_id" json:"user_id"`
	Turns        []Turn           `bson:"turns" json:"turns"`
	Evaluations  []Evaluation     `bson:"evaluations" json:"evaluations"`
	Status       InterviewStatus  `bson:"status" json:"status"`
	OverallScore float64          `bson:"overall_score" json:"overall_score"`
	Dimensions   *DimensionScores `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updated_at"`
}

// AppendTurns adds entries to the transcript while keeping it time-ordered.
// Additions with a zero timestamp are stamped with the given fallback so the
// ordering invariant holds even for lazy clients.
func (s *InterviewSession) AppendTurns(additions []Turn, fallback time.Time) {
	for _, t := range additions {
		if t.Timestamp.IsZero() {
			t.Timestamp = fallback
		}
		s.Turns = append(s.Turns, t)
	}
}
