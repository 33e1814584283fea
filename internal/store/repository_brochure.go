package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type brochureRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewBrochureRepository constructs a [BrochureRepository] backed by db.
func NewBrochureRepository(db *DB, logger *logger.Logger) BrochureRepository {
	logger.Debug().Msg("creating brochure repository")
	return &brochureRepository{db: db, logger: logger}
}

// List returns brochures newest first.
func (r *brochureRepository) List(ctx context.Context) ([]models.Brochure, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, listBrochures)
	if err != nil {
		log.Err(err).Str("func", "*brochureRepository.List").Msg("failed to list brochures")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	brochures := make([]models.Brochure, 0)
	for rows.Next() {
		var b models.Brochure
		if err = rows.Scan(&b.ID, &b.Title, &b.URL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		brochures = append(brochures, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return brochures, nil
}

func (r *brochureRepository) Create(ctx context.Context, brochure models.Brochure) (models.Brochure, error) {
	err := r.db.conn(ctx).QueryRowContext(ctx, createBrochure, brochure.Title, brochure.URL).
		Scan(&brochure.ID, &brochure.CreatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*brochureRepository.Create").Msg("failed to create brochure")
		return models.Brochure{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return brochure, nil
}

func (r *brochureRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, deleteBrochure, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*brochureRepository.Delete").Int64("id", id).Msg("failed to delete brochure")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrBrochureNotFound
	}
	return nil
}
