package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// ArtifactService exposes the version operations shared by every stage:
// selecting, deleting and resolving download URLs for artifact versions.
type ArtifactService struct {
	artifacts    repository.ArtifactRepository
	store        storage.ArtifactStore
	signedURLTTL time.Duration
	logger       *zap.Logger
}

// NewArtifactService creates the shared version-operations service.
func NewArtifactService(
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	signedURLTTL time.Duration,
	logger *zap.Logger,
) *ArtifactService {
	return &ArtifactService{
		artifacts:    artifacts,
		store:        store,
		signedURLTTL: signedURLTTL,
		logger:       logger.Named("ArtifactService"),
	}
}

// SelectVersion marks the artifact as the subject's active version and
// deselects every sibling. This is the only mechanism that flips selection.
func (s *ArtifactService) SelectVersion(ctx context.Context, artifactID uuid.UUID) (*models.Artifact, error) {
	return s.artifacts.Select(ctx, artifactID)
}

// DeleteVersion hard-deletes the artifact row and its storage objects. If the
// deleted version was selected, no sibling is auto-selected: the subject
// simply has no selection until the operator picks one.
func (s *ArtifactService) DeleteVersion(ctx context.Context, artifactID uuid.UUID) error {
	artifact, err := s.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return err
	}
	if keys := artifact.OwnedStorageKeys(); len(keys) > 0 {
		if err := s.store.Delete(ctx, keys...); err != nil {
			return err
		}
	}
	if err := s.artifacts.Delete(ctx, artifact.ID); err != nil {
		return err
	}
	s.logger.Info("Artifact version deleted",
		zap.String("artifact_id", artifact.ID.String()),
		zap.Bool("was_selected", artifact.IsSelected))
	return nil
}

// DownloadURL resolves a signed URL for the image an artifact represents.
func (s *ArtifactService) DownloadURL(ctx context.Context, artifactID uuid.UUID) (string, error) {
	artifact, err := s.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return "", err
	}
	return s.store.SignedURL(ctx, artifact.PrimaryStorageKey(), s.signedURLTTL)
}

// SignedURLFor resolves a signed URL for a raw storage key (download proxy).
func (s *ArtifactService) SignedURLFor(ctx context.Context, key string) (string, error) {
	return s.store.SignedURL(ctx, key, s.signedURLTTL)
}
