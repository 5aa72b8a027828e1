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

// Compile-time check to ensure pgEntityRepository implements the interface
var _ EntityRepository = (*pgEntityRepository)(nil)

type pgEntityRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgEntityRepository creates a PostgreSQL-backed EntityRepository.
func NewPgEntityRepository(db *pgxpool.Pool, logger *zap.Logger) EntityRepository {
	return &pgEntityRepository{
		db:     db,
		logger: logger.Named("PgEntityRepo"),
	}
}

const entityColumns = `id, generation_id, name, description, character_type, is_main_character, is_custom, reference_prompt, created_at`

const insertEntityQuery = `
    INSERT INTO entities (id, generation_id, name, description, character_type, is_main_character, is_custom, reference_prompt)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING created_at`

func (r *pgEntityRepository) Create(ctx context.Context, entity *models.Entity) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, insertEntityQuery,
		entity.ID,
		entity.GenerationID,
		entity.Name,
		entity.Description,
		entity.CharacterType,
		entity.IsMainCharacter,
		entity.IsCustom,
		entity.ReferencePrompt,
	).Scan(&entity.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert entity",
			zap.String("generation_id", entity.GenerationID.String()),
			zap.String("name", entity.Name),
			zap.Error(err))
		return fmt.Errorf("database error inserting entity '%s': %w", entity.Name, err)
	}
	r.logger.Info("Entity created",
		zap.String("entity_id", entity.ID.String()),
		zap.String("name", entity.Name),
		zap.Bool("is_custom", entity.IsCustom))
	return nil
}

func (r *pgEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1`

	var entity models.Entity
	err := pgxscan.Get(ctx, r.db, &entity, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entity '%s'", models.ErrEntityNotFound, id)
		}
		r.logger.Error("Failed to query entity", zap.String("entity_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying entity '%s': %w", id, err)
	}
	return &entity, nil
}

func (r *pgEntityRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE generation_id = $1 ORDER BY is_main_character DESC, created_at`

	var entities []models.Entity
	err := pgxscan.Select(ctx, r.db, &entities, query, generationID)
	if err != nil {
		r.logger.Error("Failed to list entities", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error listing entities for generation '%s': %w", generationID, err)
	}
	return entities, nil
}

func (r *pgEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM entities WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete entity", zap.String("entity_id", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting entity '%s': %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entity '%s'", models.ErrEntityNotFound, id)
	}
	r.logger.Info("Entity deleted", zap.String("entity_id", id.String()))
	return nil
}

func (r *pgEntityRepository) ReplaceExtracted(ctx context.Context, generationID uuid.UUID, entities []models.Entity) ([]models.Entity, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM entities WHERE generation_id = $1 AND NOT is_custom AND NOT is_main_character`
	if _, err := tx.Exec(ctx, deleteQuery, generationID); err != nil {
		return nil, fmt.Errorf("database error clearing extracted entities: %w", err)
	}

	result := make([]models.Entity, 0, len(entities))
	for _, entity := range entities {
		entity.GenerationID = generationID
		entity.IsCustom = false
		entity.IsMainCharacter = false
		if entity.ID == uuid.Nil {
			entity.ID = uuid.New()
		}
		err := tx.QueryRow(ctx, insertEntityQuery,
			entity.ID,
			entity.GenerationID,
			entity.Name,
			entity.Description,
			entity.CharacterType,
			entity.IsMainCharacter,
			entity.IsCustom,
			entity.ReferencePrompt,
		).Scan(&entity.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("database error inserting extracted entity '%s': %w", entity.Name, err)
		}
		result = append(result, entity)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit extracted entities: %w", err)
	}

	r.logger.Info("Extracted entities replaced",
		zap.String("generation_id", generationID.String()),
		zap.Int("count", len(result)))
	return result, nil
}

func (r *pgEntityRepository) GetMainCharacter(ctx context.Context, generationID uuid.UUID) (*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE generation_id = $1 AND is_main_character`

	var entity models.Entity
	err := pgxscan.Get(ctx, r.db, &entity, query, generationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: main character for generation '%s'", models.ErrEntityNotFound, generationID)
		}
		r.logger.Error("Failed to query main character", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying main character: %w", err)
	}
	return &entity, nil
}

func (r *pgEntityRepository) EnsureMainCharacter(ctx context.Context, generationID uuid.UUID, name string) (*models.Entity, error) {
	query := `
        INSERT INTO entities (generation_id, name, character_type, is_main_character, is_custom)
        VALUES ($1, $2, 'character', TRUE, FALSE)
        ON CONFLICT (generation_id) WHERE is_main_character DO NOTHING`

	if _, err := r.db.Exec(ctx, query, generationID, name); err != nil {
		r.logger.Error("Failed to ensure main character", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error ensuring main character: %w", err)
	}
	return r.GetMainCharacter(ctx, generationID)
}
