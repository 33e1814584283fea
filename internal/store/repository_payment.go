package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type paymentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPaymentRepository constructs a [PaymentRepository] backed by db.
func NewPaymentRepository(db *DB, logger *logger.Logger) PaymentRepository {
	logger.Debug().Msg("creating payment repository")
	return &paymentRepository{db: db, logger: logger}
}

// Create records a payment attempt.
func (r *paymentRepository) Create(ctx context.Context, payment models.Payment) (models.Payment, error) {
	log := logger.FromContext(ctx)

	err := r.db.conn(ctx).QueryRowContext(ctx, createPayment,
		payment.UserID,
		payment.MembershipID,
		payment.Amount,
		payment.Method,
		payment.GatewayReference,
		payment.Notes,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "*paymentRepository.Create").
			Int64("membership_id", payment.MembershipID).
			Msg("failed to record payment")
		return models.Payment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return payment, nil
}
