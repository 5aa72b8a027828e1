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

// Compile-time check to ensure pgContentRepository implements the interface
var _ ContentRepository = (*pgContentRepository)(nil)

type pgContentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgContentRepository creates a PostgreSQL-backed ContentRepository.
func NewPgContentRepository(db *pgxpool.Pool, logger *zap.Logger) ContentRepository {
	return &pgContentRepository{
		db:     db,
		logger: logger.Named("PgContentRepo"),
	}
}

func (r *pgContentRepository) GetCorrected(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error) {
	query := `SELECT generation_id, content, model_used, updated_at FROM corrected_contents WHERE generation_id = $1`

	var content models.CorrectedContent
	err := pgxscan.Get(ctx, r.db, &content, query, generationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: corrected content for generation '%s'", models.ErrNotFound, generationID)
		}
		r.logger.Error("Failed to query corrected content", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying corrected content: %w", err)
	}
	return &content, nil
}

func (r *pgContentRepository) UpsertCorrected(ctx context.Context, content *models.CorrectedContent) error {
	// Corrected content is replaced, never versioned.
	query := `
        INSERT INTO corrected_contents (generation_id, content, model_used)
        VALUES ($1, $2, $3)
        ON CONFLICT (generation_id) DO UPDATE SET
            content = EXCLUDED.content,
            model_used = EXCLUDED.model_used,
            updated_at = NOW()
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, content.GenerationID, content.Content, content.ModelUsed).Scan(&content.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert corrected content", zap.String("generation_id", content.GenerationID.String()), zap.Error(err))
		return fmt.Errorf("database error saving corrected content: %w", err)
	}
	r.logger.Info("Corrected content saved",
		zap.String("generation_id", content.GenerationID.String()),
		zap.String("model_used", content.ModelUsed))
	return nil
}

func (r *pgContentRepository) GetManual(ctx context.Context, generationID uuid.UUID) (*models.ManualEdit, error) {
	query := `SELECT generation_id, content, updated_at FROM manual_edits WHERE generation_id = $1`

	var edit models.ManualEdit
	err := pgxscan.Get(ctx, r.db, &edit, query, generationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: manual edit for generation '%s'", models.ErrNotFound, generationID)
		}
		r.logger.Error("Failed to query manual edit", zap.String("generation_id", generationID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error querying manual edit: %w", err)
	}
	return &edit, nil
}

func (r *pgContentRepository) UpsertManual(ctx context.Context, edit *models.ManualEdit) error {
	query := `
        INSERT INTO manual_edits (generation_id, content)
        VALUES ($1, $2)
        ON CONFLICT (generation_id) DO UPDATE SET
            content = EXCLUDED.content,
            updated_at = NOW()
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, edit.GenerationID, edit.Content).Scan(&edit.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert manual edit", zap.String("generation_id", edit.GenerationID.String()), zap.Error(err))
		return fmt.Errorf("database error saving manual edit: %w", err)
	}
	r.logger.Debug("Manual edit saved", zap.String("generation_id", edit.GenerationID.String()))
	return nil
}
