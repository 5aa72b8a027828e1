package storage

import (
	"context"
	"time"
)

// ArtifactStore is the narrow object-storage contract the workflow depends on.
// Every image the workflow produces or consumes is referenced by an opaque
// string key, never embedded.
type ArtifactStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}
