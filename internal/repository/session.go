package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

type SessionRepo struct {
	col *mongo.Collection
}

func (r SessionRepo) Create(ctx context.Context, s *model.InterviewSession) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByInterviewID finds the session paired with an interview attempt.
// There is at most one active session per interview.
func (r SessionRepo) GetByInterviewID(ctx context.Context, interviewID string) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"interview_id": interviewID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r SessionRepo) Update(ctx context.Context, s *model.InterviewSession) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r SessionRepo) DeleteByInterviewID(ctx context.Context, interviewID string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"interview_id": interviewID}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
