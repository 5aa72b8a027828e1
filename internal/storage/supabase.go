package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
	"go.uber.org/zap"

	"bookforge/internal/models"
)

// Compile-time check to ensure SupabaseStore implements the interface
var _ ArtifactStore = (*SupabaseStore)(nil)

// SupabaseStore stores artifacts in a Supabase storage bucket.
type SupabaseStore struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewSupabaseStore creates a store for the given project URL and bucket.
func NewSupabaseStore(supabaseURL, serviceKey, bucket string, logger *zap.Logger) (*SupabaseStore, error) {
	if supabaseURL == "" {
		return nil, errors.New("storage URL is not configured")
	}
	if bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}
	baseURL := strings.TrimRight(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &SupabaseStore{
		client: client,
		bucket: bucket,
		logger: logger.Named("SupabaseStore"),
	}, nil
}

// Upload writes data under the given key, overwriting any previous object.
func (s *SupabaseStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		s.logger.Error("Failed to upload object", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload object '%s': %w", key, err)
	}
	s.logger.Debug("Object uploaded", zap.String("key", key), zap.Int("size_bytes", len(data)))
	return nil
}

// Download returns the object bytes for a key. Missing objects map to
// models.ErrNotFound so callers can distinguish them from transport failures.
func (s *SupabaseStore) Download(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: object '%s'", models.ErrNotFound, key)
		}
		s.logger.Error("Failed to download object", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to download object '%s': %w", key, err)
	}
	return data, nil
}

// Delete removes the given objects. Deleting a key that is already gone is
// not an error.
func (s *SupabaseStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.RemoveFile(s.bucket, keys)
	if err != nil {
		s.logger.Error("Failed to delete objects", zap.Int("count", len(keys)), zap.Error(err))
		return fmt.Errorf("failed to delete %d object(s): %w", len(keys), err)
	}
	s.logger.Debug("Objects deleted", zap.Int("count", len(keys)))
	return nil
}

// SignedURL returns a time-limited download URL for a key.
func (s *SupabaseStore) SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, key, int(expiresIn.Seconds()))
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: object '%s'", models.ErrNotFound, key)
		}
		s.logger.Error("Failed to create signed URL", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to sign URL for '%s': %w", key, err)
	}
	return resp.SignedURL, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
