package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookforge/internal/models"
)

// Compile-time check to ensure pgArtifactRepository implements the interface
var _ ArtifactRepository = (*pgArtifactRepository)(nil)

type pgArtifactRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgArtifactRepository creates a PostgreSQL-backed ArtifactRepository.
func NewPgArtifactRepository(db *pgxpool.Pool, logger *zap.Logger) ArtifactRepository {
	return &pgArtifactRepository{
		db:     db,
		logger: logger.Named("PgArtifactRepo"),
	}
}

const artifactColumns = `id, generation_id, subject_kind, entity_id, scene_prompt_id, kind, version,
    source_image_key, processed_image_key, generated_image_key, notes, is_selected, created_at`

// subjectFilter matches the sibling group of one subject. NULL-safe comparison
// is required because entity_id/scene_prompt_id are NULL for the main character.
const subjectFilter = `generation_id = $1 AND subject_kind = $2
    AND entity_id IS NOT DISTINCT FROM $3
    AND scene_prompt_id IS NOT DISTINCT FROM $4`

func (r *pgArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	// The version subselect and the insert run in one statement so two
	// concurrent runs for the same subject cannot both claim version N; the
	// partial unique index rejects the loser.
	query := `
        INSERT INTO artifacts
            (id, generation_id, subject_kind, entity_id, scene_prompt_id, kind, version,
             source_image_key, processed_image_key, generated_image_key, notes, is_selected)
        VALUES ($1, $2, $3, $4, $5, $6,
            (SELECT COALESCE(MAX(version), 0) + 1 FROM artifacts
             WHERE generation_id = $2 AND subject_kind = $3
               AND entity_id IS NOT DISTINCT FROM $4
               AND scene_prompt_id IS NOT DISTINCT FROM $5),
            $7, $8, $9, $10, FALSE)
        RETURNING version, created_at`

	err := r.db.QueryRow(ctx, query,
		artifact.ID,
		artifact.GenerationID,
		artifact.SubjectKind,
		artifact.EntityID,
		artifact.ScenePromptID,
		artifact.Kind,
		artifact.SourceImageKey,
		artifact.ProcessedImageKey,
		artifact.GeneratedImageKey,
		artifact.Notes,
	).Scan(&artifact.Version, &artifact.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert artifact",
			zap.String("generation_id", artifact.GenerationID.String()),
			zap.String("subject_kind", string(artifact.SubjectKind)),
			zap.Error(err))
		return fmt.Errorf("database error inserting artifact: %w", err)
	}
	artifact.IsSelected = false

	r.logger.Info("Artifact created",
		zap.String("artifact_id", artifact.ID.String()),
		zap.String("subject_kind", string(artifact.SubjectKind)),
		zap.String("kind", string(artifact.Kind)),
		zap.Int("version", artifact.Version))
	return nil
}

func (r *pgArtifactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE id = $1`

	var artifact models.Artifact
	err := pgxscan.Get(ctx, r.db, &artifact, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: artifact '%s'", models.ErrArtifactNotFound, id)
		}
		r.logger.Error("Failed to query artifact", zap.String("artifact_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying artifact '%s': %w", id, err)
	}
	return &artifact, nil
}

func (r *pgArtifactRepository) ListBySubject(ctx context.Context, subject models.Subject) ([]models.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE ` + subjectFilter + ` ORDER BY version`

	var artifacts []models.Artifact
	err := pgxscan.Select(ctx, r.db, &artifacts, query,
		subject.GenerationID, subject.Kind, subject.EntityID, subject.ScenePromptID)
	if err != nil {
		r.logger.Error("Failed to list artifacts by subject",
			zap.String("generation_id", subject.GenerationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error listing artifacts: %w", err)
	}
	return artifacts, nil
}

func (r *pgArtifactRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE generation_id = $1 ORDER BY created_at`

	var artifacts []models.Artifact
	err := pgxscan.Select(ctx, r.db, &artifacts, query, generationID)
	if err != nil {
		r.logger.Error("Failed to list artifacts by generation",
			zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error listing artifacts for generation '%s': %w", generationID, err)
	}
	return artifacts, nil
}

func (r *pgArtifactRepository) GetSelected(ctx context.Context, subject models.Subject) (*models.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE ` + subjectFilter + ` AND is_selected`

	var artifact models.Artifact
	err := pgxscan.Get(ctx, r.db, &artifact, query,
		subject.GenerationID, subject.Kind, subject.EntityID, subject.ScenePromptID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no selected artifact for subject", models.ErrNotFound)
		}
		r.logger.Error("Failed to query selected artifact",
			zap.String("generation_id", subject.GenerationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying selected artifact: %w", err)
	}
	return &artifact, nil
}

func (r *pgArtifactRepository) Select(ctx context.Context, id uuid.UUID) (*models.Artifact, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var artifact models.Artifact
	err = pgxscan.Get(ctx, tx, &artifact, `SELECT `+artifactColumns+` FROM artifacts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: artifact '%s'", models.ErrArtifactNotFound, id)
		}
		return nil, fmt.Errorf("database error querying artifact '%s': %w", id, err)
	}

	// Strict swap: deselect every sibling, then select the target. The partial
	// unique index on is_selected guarantees at most one winner even if two
	// admin sessions race.
	deselect := `UPDATE artifacts SET is_selected = FALSE WHERE ` + subjectFilter + ` AND is_selected AND id <> $5`
	if _, err := tx.Exec(ctx, deselect,
		artifact.GenerationID, artifact.SubjectKind, artifact.EntityID, artifact.ScenePromptID, id); err != nil {
		return nil, fmt.Errorf("database error deselecting siblings: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE artifacts SET is_selected = TRUE WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("database error selecting artifact '%s': %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit selection: %w", err)
	}

	artifact.IsSelected = true
	r.logger.Info("Artifact selected",
		zap.String("artifact_id", id.String()),
		zap.Int("version", artifact.Version))
	return &artifact, nil
}

func (r *pgArtifactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM artifacts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete artifact", zap.String("artifact_id", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting artifact '%s': %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: artifact '%s'", models.ErrArtifactNotFound, id)
	}
	r.logger.Info("Artifact deleted", zap.String("artifact_id", id.String()))
	return nil
}
