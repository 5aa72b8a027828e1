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

// Compile-time check to ensure pgGenerationRepository implements the interface
var _ GenerationRepository = (*pgGenerationRepository)(nil)

type pgGenerationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgGenerationRepository creates a PostgreSQL-backed GenerationRepository.
func NewPgGenerationRepository(db *pgxpool.Pool, logger *zap.Logger) GenerationRepository {
	return &pgGenerationRepository{
		db:     db,
		logger: logger.Named("PgGenerationRepo"),
	}
}

const generationColumns = `id, book_config_id, owner_id, current_step, steps_completed, created_at, updated_at`

func (r *pgGenerationRepository) GetOrCreate(ctx context.Context, bookConfigID, ownerID uuid.UUID) (*models.Generation, error) {
	insertQuery := `
        INSERT INTO generations (book_config_id, owner_id)
        VALUES ($1, $2)
        ON CONFLICT (book_config_id) DO NOTHING
        RETURNING ` + generationColumns

	var gen models.Generation
	err := pgxscan.Get(ctx, r.db, &gen, insertQuery, bookConfigID, ownerID)
	if err == nil {
		gen.StepsCompleted.Normalize()
		r.logger.Info("Created generation",
			zap.String("generation_id", gen.ID.String()),
			zap.String("book_config_id", bookConfigID.String()))
		return &gen, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("Failed to insert generation", zap.String("book_config_id", bookConfigID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error creating generation for config '%s': %w", bookConfigID, err)
	}

	// Conflict: another request already created it, read the existing row.
	selectQuery := `SELECT ` + generationColumns + ` FROM generations WHERE book_config_id = $1`
	err = pgxscan.Get(ctx, r.db, &gen, selectQuery, bookConfigID)
	if err != nil {
		r.logger.Error("Failed to load generation after conflict", zap.String("book_config_id", bookConfigID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error loading generation for config '%s': %w", bookConfigID, err)
	}
	gen.StepsCompleted.Normalize()
	return &gen, nil
}

func (r *pgGenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations WHERE id = $1`

	var gen models.Generation
	err := pgxscan.Get(ctx, r.db, &gen, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: generation '%s'", models.ErrGenerationNotFound, id)
		}
		r.logger.Error("Failed to query generation", zap.String("generation_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying generation '%s': %w", id, err)
	}
	gen.StepsCompleted.Normalize()
	return &gen, nil
}

func (r *pgGenerationRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentStep int, steps models.StepsCompleted) error {
	query := `
        UPDATE generations
        SET current_step = $2, steps_completed = $3, updated_at = NOW()
        WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id, currentStep, steps)
	if err != nil {
		r.logger.Error("Failed to update generation progress", zap.String("generation_id", id.String()), zap.Error(err))
		return fmt.Errorf("database error updating generation '%s': %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: generation '%s'", models.ErrGenerationNotFound, id)
	}
	r.logger.Debug("Generation progress updated",
		zap.String("generation_id", id.String()),
		zap.Int("current_step", currentStep))
	return nil
}

func (r *pgGenerationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM generations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete generation", zap.String("generation_id", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting generation '%s': %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: generation '%s'", models.ErrGenerationNotFound, id)
	}
	r.logger.Info("Generation deleted", zap.String("generation_id", id.String()))
	return nil
}
