package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no document matches the given id and owner.
// Callers should not care which storage engine produced it.
var ErrNotFound = errors.New("record not found")

// Repository bundles the per-collection gateways over one database handle.
type Repository struct {
	Interviews InterviewRepo
	Sessions   SessionRepo
	Users      UserRepo
	Resources  ResourceRepo
}

func New(db *mongo.Database) *Repository {
	return &Repository{
		Interviews: InterviewRepo{col: db.Collection("interviews")},
		Sessions:   SessionRepo{col: db.Collection("interview_sessions")},
		Users:      UserRepo{col: db.Collection("users")},
		Resources:  ResourceRepo{col: db.Collection("career_resources")},
	}
}
