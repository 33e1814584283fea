package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

// destinationRepository is the PostgreSQL-backed implementation of
// [DestinationRepository]. Best months are stored as JSON text.
type destinationRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDestinationRepository constructs a [DestinationRepository] backed by db.
func NewDestinationRepository(db *DB, logger *logger.Logger) DestinationRepository {
	logger.Debug().Msg("creating destination repository")
	return &destinationRepository{db: db, logger: logger}
}

// List returns all destinations ordered by name.
func (r *destinationRepository) List(ctx context.Context) ([]models.Destination, error) {
	return r.query(ctx, "*destinationRepository.List", listDestinations)
}

// ListAvailable returns destinations with status "available", ordered by name.
func (r *destinationRepository) ListAvailable(ctx context.Context) ([]models.Destination, error) {
	return r.query(ctx, "*destinationRepository.ListAvailable", listAvailableDestinations)
}

// ListByIDs returns the destinations whose id is in ids. Unknown ids are
// silently skipped.
func (r *destinationRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Destination, error) {
	if len(ids) == 0 {
		return []models.Destination{}, nil
	}

	query, args, err := buildSelectDestinationsByIDsQuery(ctx, ids)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "*destinationRepository.ListByIDs", query, args...)
}

func (r *destinationRepository) query(ctx context.Context, funcName, query string, args ...any) ([]models.Destination, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query destinations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		d, scanErr := scanDestination(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan destination row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		destinations = append(destinations, d)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return destinations, nil
}

// GetByID returns the destination with the given id or [ErrDestinationNotFound].
func (r *destinationRepository) GetByID(ctx context.Context, id int64) (models.Destination, error) {
	log := logger.FromContext(ctx)

	d, err := scanDestination(r.db.conn(ctx).QueryRowContext(ctx, getDestinationByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Destination{}, ErrDestinationNotFound
		}
		log.Err(err).Str("func", "*destinationRepository.GetByID").Int64("id", id).Msg("failed to get destination")
		return models.Destination{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return d, nil
}

// Create inserts destination and returns it with its new id.
func (r *destinationRepository) Create(ctx context.Context, destination models.Destination) (models.Destination, error) {
	log := logger.FromContext(ctx)

	months, err := encodeMonths(destination.BestMonths)
	if err != nil {
		return models.Destination{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.conn(ctx).QueryRowContext(ctx, createDestination,
		destination.Name,
		destination.Description,
		destination.DurationDays,
		months,
		destination.Difficulty,
		destination.Status,
		destination.ImageURL,
	).Scan(&destination.ID)
	if err != nil {
		log.Err(err).Str("func", "*destinationRepository.Create").Str("name", destination.Name).Msg("failed to create destination")
		return models.Destination{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if destination.BestMonths == nil {
		destination.BestMonths = []string{}
	}
	return destination, nil
}

// Update applies the non-nil fields of update and returns the new row.
func (r *destinationRepository) Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateDestinationQuery(ctx, id, update)
	if err != nil {
		log.Err(err).Str("func", "*destinationRepository.Update").Int64("id", id).Msg("failed to build query")
		return models.Destination{}, err
	}

	d, err := scanDestination(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Destination{}, ErrDestinationNotFound
		}
		log.Err(err).Str("func", "*destinationRepository.Update").Int64("id", id).Msg("failed to update destination")
		return models.Destination{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return d, nil
}

// Delete removes the destination and its plan and membership links.
func (r *destinationRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.conn(ctx).ExecContext(ctx, deleteDestination, id)
	if err != nil {
		log.Err(err).Str("func", "*destinationRepository.Delete").Int64("id", id).Msg("failed to delete destination")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrDestinationNotFound
	}
	return nil
}

func scanDestination(row rowScanner, extra ...any) (models.Destination, error) {
	var (
		d      models.Destination
		months string
	)

	dest := []any{&d.ID, &d.Name, &d.Description, &d.DurationDays, &months, &d.Difficulty, &d.Status, &d.ImageURL}
	if err := row.Scan(append(extra, dest...)...); err != nil {
		return models.Destination{}, err
	}

	bestMonths, err := decodeMonths(months)
	if err != nil {
		return models.Destination{}, err
	}
	d.BestMonths = bestMonths

	return d, nil
}
