package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type rejectionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewRejectionRepository constructs a [RejectionRepository] backed by db.
func NewRejectionRepository(db *DB, logger *logger.Logger) RejectionRepository {
	logger.Debug().Msg("creating rejection repository")
	return &rejectionRepository{db: db, logger: logger}
}

// Create writes the audit row of a declined membership. The row keeps a
// snapshot of the membership because the membership itself is deleted.
func (r *rejectionRepository) Create(ctx context.Context, rejection models.Rejection) error {
	log := logger.FromContext(ctx)

	_, err := r.db.conn(ctx).ExecContext(ctx, createRejection,
		rejection.MembershipID,
		rejection.UserID,
		string(rejection.PlanType),
		rejection.Reason,
		rejection.RejectedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*rejectionRepository.Create").
			Int64("membership_id", rejection.MembershipID).
			Msg("failed to record rejection")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
