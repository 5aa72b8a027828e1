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

// Compile-time check to ensure pgScenePromptRepository implements the interface
var _ ScenePromptRepository = (*pgScenePromptRepository)(nil)

type pgScenePromptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgScenePromptRepository creates a PostgreSQL-backed ScenePromptRepository.
func NewPgScenePromptRepository(db *pgxpool.Pool, logger *zap.Logger) ScenePromptRepository {
	return &pgScenePromptRepository{
		db:     db,
		logger: logger.Named("PgScenePromptRepo"),
	}
}

const scenePromptColumns = `id, generation_id, scene_type, scene_number, image_prompt, entity_ids, created_at, updated_at`

func (r *pgScenePromptRepository) Replace(ctx context.Context, generationID uuid.UUID, prompts []models.ScenePrompt) ([]models.ScenePrompt, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scene_prompts WHERE generation_id = $1`, generationID); err != nil {
		return nil, fmt.Errorf("database error clearing scene prompts: %w", err)
	}

	insertQuery := `
        INSERT INTO scene_prompts (id, generation_id, scene_type, scene_number, image_prompt, entity_ids)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	result := make([]models.ScenePrompt, 0, len(prompts))
	for _, prompt := range prompts {
		prompt.GenerationID = generationID
		if prompt.ID == uuid.Nil {
			prompt.ID = uuid.New()
		}
		if prompt.EntityIDs == nil {
			prompt.EntityIDs = []uuid.UUID{}
		}
		err := tx.QueryRow(ctx, insertQuery,
			prompt.ID,
			prompt.GenerationID,
			prompt.SceneType,
			prompt.SceneNumber,
			prompt.ImagePrompt,
			prompt.EntityIDs,
		).Scan(&prompt.CreatedAt, &prompt.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("database error inserting scene prompt %d: %w", prompt.SceneNumber, err)
		}
		result = append(result, prompt)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit scene prompts: %w", err)
	}

	r.logger.Info("Scene prompts replaced",
		zap.String("generation_id", generationID.String()),
		zap.Int("count", len(result)))
	return result, nil
}

func (r *pgScenePromptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScenePrompt, error) {
	query := `SELECT ` + scenePromptColumns + ` FROM scene_prompts WHERE id = $1`

	var prompt models.ScenePrompt
	err := pgxscan.Get(ctx, r.db, &prompt, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: scene prompt '%s'", models.ErrNotFound, id)
		}
		r.logger.Error("Failed to query scene prompt", zap.String("prompt_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying scene prompt '%s': %w", id, err)
	}
	return &prompt, nil
}

func (r *pgScenePromptRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.ScenePrompt, error) {
	query := `SELECT ` + scenePromptColumns + ` FROM scene_prompts WHERE generation_id = $1 ORDER BY scene_type, scene_number`

	var prompts []models.ScenePrompt
	err := pgxscan.Select(ctx, r.db, &prompts, query, generationID)
	if err != nil {
		r.logger.Error("Failed to list scene prompts", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error listing scene prompts for generation '%s': %w", generationID, err)
	}
	return prompts, nil
}

func (r *pgScenePromptRepository) Update(ctx context.Context, prompt *models.ScenePrompt) error {
	query := `
        UPDATE scene_prompts
        SET image_prompt = $2, entity_ids = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	if prompt.EntityIDs == nil {
		prompt.EntityIDs = []uuid.UUID{}
	}
	err := r.db.QueryRow(ctx, query, prompt.ID, prompt.ImagePrompt, prompt.EntityIDs).Scan(&prompt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: scene prompt '%s'", models.ErrNotFound, prompt.ID)
		}
		r.logger.Error("Failed to update scene prompt", zap.String("prompt_id", prompt.ID.String()), zap.Error(err))
		return fmt.Errorf("database error updating scene prompt '%s': %w", prompt.ID, err)
	}
	r.logger.Debug("Scene prompt updated", zap.String("prompt_id", prompt.ID.String()))
	return nil
}
