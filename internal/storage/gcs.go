package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

const uploadTimeout = 30 * time.Second

// GCS stores resume artifacts in a Google Cloud Storage bucket and serves
// them through the bucket's public base URL.
type GCS struct {
	client *storage.Client
	bucket string
	base   string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{
		client: client,
		bucket: bucket,
		base:   fmt.Sprintf("https://storage.googleapis.com/%s", bucket),
	}, nil
}

func (g *GCS) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: write %s: %v", ErrUpload, key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ErrUpload, key, err)
	}
	return g.base + "/" + key, nil
}

func (g *GCS) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, g.base+"/") {
		return fmt.Errorf("url %q not in bucket %s", url, g.bucket)
	}
	key := strings.TrimPrefix(url, g.base+"/")
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	return g.client.Bucket(g.bucket).Object(key).Delete(ctx)
}
