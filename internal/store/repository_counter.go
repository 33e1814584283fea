package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
)

type counterRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCounterRepository constructs a [CounterRepository] backed by db.
func NewCounterRepository(db *DB, logger *logger.Logger) CounterRepository {
	logger.Debug().Msg("creating membership counter repository")
	return &counterRepository{db: db, logger: logger}
}

// Next increments the counter row for year in a single upsert statement,
// creating it at 1 when absent. Concurrent callers are serialized by the
// row lock taken by the upsert, so every call observes a distinct value.
func (r *counterRepository) Next(ctx context.Context, year int) (int64, error) {
	log := logger.FromContext(ctx)

	var counter int64
	if err := r.db.conn(ctx).QueryRowContext(ctx, nextMembershipCounter, year).Scan(&counter); err != nil {
		log.Err(err).Str("func", "*counterRepository.Next").Int("year", year).Msg("failed to increment membership counter")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return counter, nil
}
