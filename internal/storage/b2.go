package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"
)

// B2Storage uploads objects to one Backblaze B2 bucket.
type B2Storage struct {
	Client *b2.Client
	Bucket *b2.Bucket
}

// NewB2 connects to B2 and resolves bucketName.
func NewB2(ctx context.Context, keyID, appKey, bucketName string) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, keyID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return &B2Storage{Client: client, Bucket: bucket}, nil
}

// Upload streams r to key and returns the object's download URL.
func (s *B2Storage) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	w := s.Bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return objectURL(s.Bucket.BaseURL(), s.Bucket.Name(), key), nil
}

// objectURL builds the friendly download URL of key in bucket.
func objectURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/file/%s/%s", strings.TrimSuffix(baseURL, "/"), bucket, key)
}
