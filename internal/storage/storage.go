// Package storage holds the resume artifact store. The lifecycle controller
// only sees the Uploader interface; the GCS client behind it is swappable in
// tests.
package storage

import (
	"context"
	"errors"
)

// ErrUpload wraps any failure while writing an artifact to the store.
var ErrUpload = errors.New("artifact upload failed")

type Uploader interface {
	// Upload writes the artifact and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the artifact behind a previously returned URL.
	// Best-effort; callers log failures instead of surfacing them.
	Delete(ctx context.Context, url string) error
}
