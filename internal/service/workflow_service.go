package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// WorkflowService owns the generation lifecycle: get-or-create, step
// completion bookkeeping and cascading deletion. It does not validate that a
// completed step's artifacts actually exist; that is a trust boundary with
// the admin UI, and each stage enforces its own preconditions when it runs.
type WorkflowService struct {
	generations repository.GenerationRepository
	artifacts   repository.ArtifactRepository
	store       storage.ArtifactStore
	logger      *zap.Logger
}

// NewWorkflowService creates the generation lifecycle service.
func NewWorkflowService(
	generations repository.GenerationRepository,
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		generations: generations,
		artifacts:   artifacts,
		store:       store,
		logger:      logger.Named("WorkflowService"),
	}
}

// GetOrCreate returns the generation for a book configuration, creating it at
// step 1 on first visit. Never duplicates: uniqueness lives in the database.
func (s *WorkflowService) GetOrCreate(ctx context.Context, bookConfigID, ownerID uuid.UUID) (*models.Generation, error) {
	if bookConfigID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookConfigId is required", models.ErrInvalidInput)
	}
	return s.generations.GetOrCreate(ctx, bookConfigID, ownerID)
}

// Get returns a generation by id.
func (s *WorkflowService) Get(ctx context.Context, generationID uuid.UUID) (*models.Generation, error) {
	return s.generations.GetByID(ctx, generationID)
}

// CompleteStep marks the step done and advances the current step when the
// operator completed the step they were on.
func (s *WorkflowService) CompleteStep(ctx context.Context, generationID uuid.UUID, step int) (*models.Generation, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if err := gen.MarkStepComplete(step); err != nil {
		return nil, err
	}
	if err := s.generations.UpdateProgress(ctx, gen.ID, gen.CurrentStep, gen.StepsCompleted); err != nil {
		return nil, err
	}
	s.logger.Info("Step completed",
		zap.String("generation_id", generationID.String()),
		zap.Int("step", step),
		zap.Int("current_step", gen.CurrentStep))
	return gen, nil
}

// Delete removes a generation with everything it owns: every artifact row in
// every stage and every object-storage object they reference. Storage objects
// go first; a failure there aborts before the database delete so no key is
// ever unreachable from a surviving row. Storage deletions are not undoable,
// so no rollback is attempted.
func (s *WorkflowService) Delete(ctx context.Context, generationID uuid.UUID) error {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return err
	}

	artifacts, err := s.artifacts.ListByGeneration(ctx, gen.ID)
	if err != nil {
		return fmt.Errorf("failed to collect artifacts for deletion: %w", err)
	}

	var keys []string
	for i := range artifacts {
		keys = append(keys, artifacts[i].OwnedStorageKeys()...)
	}
	if len(keys) > 0 {
		if err := s.store.Delete(ctx, keys...); err != nil {
			return fmt.Errorf("failed to delete storage objects for generation '%s': %w", gen.ID, err)
		}
	}

	if err := s.generations.Delete(ctx, gen.ID); err != nil {
		return err
	}

	s.logger.Info("Generation deleted with artifacts",
		zap.String("generation_id", gen.ID.String()),
		zap.Int("artifact_count", len(artifacts)),
		zap.Int("storage_keys_deleted", len(keys)))
	return nil
}
