package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// SceneService runs stage 6: composite scene images conditioned on the
// selected reference images of every entity appearing in the scene.
type SceneService struct {
	generations repository.GenerationRepository
	entities    repository.EntityRepository
	scenes      repository.ScenePromptRepository
	artifacts   repository.ArtifactRepository
	store       storage.ArtifactStore
	images      ImageClient
	logger      *zap.Logger
}

// NewSceneService creates the stage-6 service.
func NewSceneService(
	generations repository.GenerationRepository,
	entities repository.EntityRepository,
	scenes repository.ScenePromptRepository,
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	images ImageClient,
	logger *zap.Logger,
) *SceneService {
	return &SceneService{
		generations: generations,
		entities:    entities,
		scenes:      scenes,
		artifacts:   artifacts,
		store:       store,
		images:      images,
		logger:      logger.Named("SceneService"),
	}
}

// GenerateScene produces a new version for one scene. Every entity of the
// scene, plus the main character, must have a selected reference image; a
// missing selection fails the whole call before any artifact is created.
func (s *SceneService) GenerateScene(ctx context.Context, scenePromptID uuid.UUID) (*models.Artifact, error) {
	prompt, err := s.scenes.GetByID(ctx, scenePromptID)
	if err != nil {
		return nil, err
	}

	references, refKeys, err := s.collectReferences(ctx, prompt)
	if err != nil {
		return nil, err
	}

	imageData, err := s.images.Generate(ctx, prompt.ImagePrompt, references)
	if err != nil {
		return nil, fmt.Errorf("%w: scene %d: %v", models.ErrGenerationFailed, prompt.SceneNumber, err)
	}

	key := fmt.Sprintf("generations/%s/scenes/%s/scene-%s.png", prompt.GenerationID, prompt.ID, uuid.New())
	if err := s.store.Upload(ctx, key, imageData, "image/png"); err != nil {
		return nil, err
	}

	artifact := models.NewGeneratedArtifact(models.SceneSubject(prompt.GenerationID, prompt.ID), key, models.ArtifactNotes{
		ReferenceImageKeys: refKeys,
		UserPrompt:         prompt.ImagePrompt,
	})
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectScene), string(models.ArtifactGenerated)).Inc()

	s.logger.Info("Scene image generated",
		zap.String("scene_prompt_id", prompt.ID.String()),
		zap.Int("scene_number", prompt.SceneNumber),
		zap.Int("version", artifact.Version),
		zap.Int("reference_images", len(refKeys)))
	return artifact, nil
}

// GenerateAllScenes produces one new version per scene prompt, sequentially.
// Failures are collected per scene; successful scenes keep their versions.
func (s *SceneService) GenerateAllScenes(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	prompts, err := s.scenes.ListByGeneration(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("%w: generate scene prompts in step 3 first", models.ErrMissingPrecondition)
	}

	var (
		created []models.Artifact
		errs    []error
	)
	for i := range prompts {
		artifact, err := s.GenerateScene(ctx, prompts[i].ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created = append(created, *artifact)
	}
	return created, errors.Join(errs...)
}

// ListVersions returns every image version for a scene, oldest first.
func (s *SceneService) ListVersions(ctx context.Context, scenePromptID uuid.UUID) ([]models.Artifact, error) {
	prompt, err := s.scenes.GetByID(ctx, scenePromptID)
	if err != nil {
		return nil, err
	}
	return s.artifacts.ListBySubject(ctx, models.SceneSubject(prompt.GenerationID, prompt.ID))
}

// collectReferences downloads the selected reference image of the main
// character and of every entity linked to the scene, deduplicated, in a
// stable order (main character first).
func (s *SceneService) collectReferences(ctx context.Context, prompt *models.ScenePrompt) ([][]byte, []string, error) {
	main, err := s.entities.GetMainCharacter(ctx, prompt.GenerationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: generate scene prompts in step 3 first", models.ErrMissingPrecondition)
		}
		return nil, nil, err
	}

	type refSubject struct {
		name    string
		subject models.Subject
	}
	subjects := []refSubject{{name: main.Name, subject: models.MainCharacterSubject(prompt.GenerationID)}}
	seen := map[uuid.UUID]bool{main.ID: true}
	for _, entityID := range prompt.EntityIDs {
		if seen[entityID] {
			continue
		}
		seen[entityID] = true
		entity, err := s.entities.GetByID(ctx, entityID)
		if err != nil {
			return nil, nil, err
		}
		subjects = append(subjects, refSubject{name: entity.Name, subject: models.EntitySubject(prompt.GenerationID, entity.ID)})
	}

	var (
		references [][]byte
		keys       []string
	)
	for _, rs := range subjects {
		selected, err := s.artifacts.GetSelected(ctx, rs.subject)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: no selected reference image for '%s'", models.ErrMissingPrecondition, rs.name)
			}
			return nil, nil, err
		}
		key := selected.PrimaryStorageKey()
		data, err := s.store.Download(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		references = append(references, data)
		keys = append(keys, key)
	}
	return references, keys, nil
}
