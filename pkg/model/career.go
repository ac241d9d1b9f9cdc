package model

import "time"

// CareerResource is a curated article, guide, or course surfaced on the
// career page. Read-mostly; list queries filter by category and tag.
type CareerResource struct {
	ID          string    `bson:"_id" json:"resource_id"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	URL         string    `bson:"url" json:"url"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// JobListing is a job fetched live from an external board; never persisted.
type JobListing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url"`
	Posted   string `json:"posted,omitempty"`
}
