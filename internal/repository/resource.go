package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

type ResourceRepo struct {
	col *mongo.Collection
}

// List returns career resources filtered by category and/or tag. Empty filter
// values are ignored.
func (r ResourceRepo) List(ctx context.Context, category, tag string, limit int64) ([]model.CareerResource, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if tag != "" {
		filter["tags"] = tag
	}
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cur.Close(ctx)
	out := []model.CareerResource{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return out, nil
}
