package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type statsRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewStatsRepository constructs a [StatsRepository] backed by db.
func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	logger.Debug().Msg("creating stats repository")
	return &statsRepository{db: db, logger: logger}
}

// Dashboard counts users, memberships and destinations in one round trip.
// Active and pending counts use the stored status.
func (r *statsRepository) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := r.db.conn(ctx).QueryRowContext(ctx, dashboardStats).Scan(
		&stats.TotalUsers,
		&stats.TotalMemberships,
		&stats.ActiveMemberships,
		&stats.PendingRequests,
		&stats.TotalDestinations,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*statsRepository.Dashboard").Msg("failed to compute dashboard stats")
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}
