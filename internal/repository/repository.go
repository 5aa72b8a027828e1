package repository

import (
	"context"

	"github.com/google/uuid"

	"bookforge/internal/models"
)

// GenerationRepository persists the per-book-configuration workflow aggregate.
type GenerationRepository interface {
	// GetOrCreate returns the existing generation for a book configuration or
	// creates one at step 1 with all completion flags false. Safe under
	// concurrent calls: uniqueness is enforced by a database constraint.
	GetOrCreate(ctx context.Context, bookConfigID, ownerID uuid.UUID) (*models.Generation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Generation, error)
	// UpdateProgress writes current_step and steps_completed.
	UpdateProgress(ctx context.Context, id uuid.UUID, currentStep int, steps models.StepsCompleted) error
	// Delete removes the generation row; owned rows cascade in the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ArtifactRepository persists versioned artifacts.
type ArtifactRepository interface {
	// Create inserts the artifact, assigning the next version number for its
	// subject in the same statement. Version and CreatedAt are populated on
	// return.
	Create(ctx context.Context, artifact *models.Artifact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Artifact, error)
	ListBySubject(ctx context.Context, subject models.Subject) ([]models.Artifact, error)
	ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error)
	// GetSelected returns the selected artifact for a subject, or
	// models.ErrNotFound when no version is selected.
	GetSelected(ctx context.Context, subject models.Subject) (*models.Artifact, error)
	// Select flips is_selected to true on the given artifact and to false on
	// every sibling of the same subject, in one transaction.
	Select(ctx context.Context, id uuid.UUID) (*models.Artifact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EntityRepository persists story characters and objects.
type EntityRepository interface {
	Create(ctx context.Context, entity *models.Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Entity, error)
	ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Entity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ReplaceExtracted swaps the extracted (non-custom, non-main) entities of a
	// generation for a fresh set in one transaction. Custom entities and the
	// main character are left untouched.
	ReplaceExtracted(ctx context.Context, generationID uuid.UUID, entities []models.Entity) ([]models.Entity, error)
	GetMainCharacter(ctx context.Context, generationID uuid.UUID) (*models.Entity, error)
	// EnsureMainCharacter inserts the main-character row if it does not exist.
	EnsureMainCharacter(ctx context.Context, generationID uuid.UUID, name string) (*models.Entity, error)
}

// ScenePromptRepository persists per-scene image prompts.
type ScenePromptRepository interface {
	// Replace swaps every scene prompt of a generation for a fresh set.
	Replace(ctx context.Context, generationID uuid.UUID, prompts []models.ScenePrompt) ([]models.ScenePrompt, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScenePrompt, error)
	ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.ScenePrompt, error)
	// Update edits a prompt in place (no versioning).
	Update(ctx context.Context, prompt *models.ScenePrompt) error
}

// ContentRepository persists the stage-2 story documents.
type ContentRepository interface {
	GetCorrected(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error)
	// UpsertCorrected replaces the single corrected-content record.
	UpsertCorrected(ctx context.Context, content *models.CorrectedContent) error
	GetManual(ctx context.Context, generationID uuid.UUID) (*models.ManualEdit, error)
	UpsertManual(ctx context.Context, edit *models.ManualEdit) error
}
