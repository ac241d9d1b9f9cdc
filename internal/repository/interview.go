package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

type InterviewRepo struct {
	col *mongo.Collection
}

func (r InterviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	now := time.Now().UTC()
	iv.CreatedAt, iv.UpdatedAt = now, now
	if _, err := r.col.InsertOne(ctx, iv); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

func (r InterviewRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Interview, error) {
	var iv model.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find interview: %w", err)
	}
	return &iv, nil
}

// Update replaces the whole document. Lifecycle transitions re-read the
// record immediately before calling this, keeping the race window small.
func (r InterviewRepo) Update(ctx context.Context, iv *model.Interview) error {
	iv.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": iv.ID, "user_id": iv.UserID}, iv)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r InterviewRepo) ListByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer cur.Close(ctx)
	out := []model.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode interviews: %w", err)
	}
	return out, nil
}

func (r InterviewRepo) ListCompletedByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "status": model.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("list completed interviews: %w", err)
	}
	defer cur.Close(ctx)
	out := []model.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode interviews: %w", err)
	}
	return out, nil
}

// ListCompleted returns completed interviews across all users, for the
// leaderboard read path.
func (r InterviewRepo) ListCompleted(ctx context.Context) ([]model.Interview, error) {
	cur, err := r.col.Find(ctx, bson.M{"status": model.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("list completed interviews: %w", err)
	}
	defer cur.Close(ctx)
	out := []model.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode interviews: %w", err)
	}
	return out, nil
}

// DeleteByIDAndUser removes the interview and returns the deleted document so
// the caller can cascade cleanup of coupled records.
func (r InterviewRepo) DeleteByIDAndUser(ctx context.Context, id, userID string) (*model.Interview, error) {
	var iv model.Interview
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete interview: %w", err)
	}
	return &iv, nil
}
