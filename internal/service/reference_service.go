package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// ReferenceService runs stages 4 and 5: reference images for the supporting
// characters and objects of a generation. The main character is out of scope
// here, its reference images come from stage 1.
type ReferenceService struct {
	generations repository.GenerationRepository
	entities    repository.EntityRepository
	artifacts   repository.ArtifactRepository
	store       storage.ArtifactStore
	images      ImageClient
	prompts     *PromptProvider
	logger      *zap.Logger
}

// NewReferenceService creates the stage-4/5 service.
func NewReferenceService(
	generations repository.GenerationRepository,
	entities repository.EntityRepository,
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	images ImageClient,
	prompts *PromptProvider,
	logger *zap.Logger,
) *ReferenceService {
	return &ReferenceService{
		generations: generations,
		entities:    entities,
		artifacts:   artifacts,
		store:       store,
		images:      images,
		prompts:     prompts,
		logger:      logger.Named("ReferenceService"),
	}
}

// GenerateSingle produces a new reference-image version for one entity.
// An empty customPrompt falls back to the entity's stored reference prompt,
// then to the default template.
func (s *ReferenceService) GenerateSingle(ctx context.Context, entityID uuid.UUID, customPrompt string) (*models.Artifact, error) {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.IsMainCharacter {
		return nil, models.ErrMainCharacterImage
	}

	prompt := strings.TrimSpace(customPrompt)
	if prompt == "" {
		prompt = strings.TrimSpace(entity.ReferencePrompt)
	}
	if prompt == "" {
		prompt, err = s.prompts.Render(PromptEntityReference, map[string]string{
			"Name":        entity.Name,
			"Description": entity.Description,
		})
		if err != nil {
			return nil, err
		}
	}

	imageData, err := s.images.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: entity '%s': %v", models.ErrGenerationFailed, entity.Name, err)
	}

	key := fmt.Sprintf("generations/%s/entities/%s/ref-%s.png", entity.GenerationID, entity.ID, uuid.New())
	if err := s.store.Upload(ctx, key, imageData, "image/png"); err != nil {
		return nil, err
	}

	artifact := models.NewGeneratedArtifact(models.EntitySubject(entity.GenerationID, entity.ID), key, models.ArtifactNotes{
		UserPrompt: prompt,
	})
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectEntity), string(models.ArtifactGenerated)).Inc()

	s.logger.Info("Entity reference image generated",
		zap.String("entity_id", entity.ID.String()),
		zap.String("name", entity.Name),
		zap.Int("version", artifact.Version))
	return artifact, nil
}

// GenerateAll produces one new reference version for every non-main entity,
// sequentially. Failures are collected per entity; successful entities keep
// their new versions.
func (s *ReferenceService) GenerateAll(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	entities, err := s.entities.ListByGeneration(ctx, generationID)
	if err != nil {
		return nil, err
	}

	var (
		created []models.Artifact
		errs    []error
	)
	for _, entity := range entities {
		if entity.IsMainCharacter {
			continue
		}
		artifact, err := s.GenerateSingle(ctx, entity.ID, "")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created = append(created, *artifact)
	}
	return created, errors.Join(errs...)
}

// UploadVersion stores an operator-provided image as a new version for an
// entity.
func (s *ReferenceService) UploadVersion(ctx context.Context, entityID uuid.UUID, data []byte, contentType string) (*models.Artifact, error) {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.IsMainCharacter {
		return nil, models.ErrMainCharacterImage
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", models.ErrInvalidInput)
	}

	key := fmt.Sprintf("generations/%s/entities/%s/upload-%s%s", entity.GenerationID, entity.ID, uuid.New(), extensionFor(contentType))
	if err := s.store.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	artifact := models.NewUploadArtifact(models.EntitySubject(entity.GenerationID, entity.ID), key, contentType)
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectEntity), string(models.ArtifactUpload)).Inc()
	return artifact, nil
}

// ListVersions returns every reference-image version for an entity, oldest
// first.
func (s *ReferenceService) ListVersions(ctx context.Context, entityID uuid.UUID) ([]models.Artifact, error) {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return s.artifacts.ListBySubject(ctx, models.EntitySubject(entity.GenerationID, entity.ID))
}
