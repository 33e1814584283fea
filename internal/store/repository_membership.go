// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/jackc/pgerrcode"
)

// constraintMembershipID is the unique constraint on the allocated
// membership identifier, declared in the initial migration.
const constraintMembershipID = "memberships_membership_id_key"

// membershipRepository is the PostgreSQL-backed implementation of
// [MembershipRepository]. Row locks taken by the ForUpdate lookups are only
// meaningful inside [DB.WithinTx].
type membershipRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMembershipRepository constructs a [MembershipRepository] backed by db.
func NewMembershipRepository(db *DB, logger *logger.Logger) MembershipRepository {
	logger.Debug().Msg("creating membership repository")
	return &membershipRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a PENDING/UNPAID membership. A second membership for the
// same user yields [ErrMembershipAlreadyExists].
func (r *membershipRepository) Create(ctx context.Context, membership models.Membership) (models.Membership, error) {
	log := logger.FromContext(ctx)

	err := r.db.conn(ctx).QueryRowContext(ctx, createMembership,
		membership.UserID,
		string(membership.PlanType),
		string(membership.Status),
		string(membership.PaymentStatus),
		membership.TotalDays,
		membership.State,
		membership.PaymentAmount,
	).Scan(&membership.ID, &membership.CreatedAt, &membership.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "*membershipRepository.Create").
			Int64("user_id", membership.UserID).
			Msg("failed to create membership")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Membership{}, ErrMembershipAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Membership{}, ErrUserNotFound
		default:
			return models.Membership{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if membership.CustomDestinationIDs == nil {
		membership.CustomDestinationIDs = []int64{}
	}

	return membership, nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id int64) (models.Membership, error) {
	return r.getOne(ctx, "*membershipRepository.GetByID", getMembershipByID, id)
}

func (r *membershipRepository) GetByIDForUpdate(ctx context.Context, id int64) (models.Membership, error) {
	return r.getOne(ctx, "*membershipRepository.GetByIDForUpdate", getMembershipByIDForUpdate, id)
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID int64) (models.Membership, error) {
	return r.getOne(ctx, "*membershipRepository.GetByUserID", getMembershipByUserID, userID)
}

func (r *membershipRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (models.Membership, error) {
	return r.getOne(ctx, "*membershipRepository.GetByUserIDForUpdate", getMembershipByUserIDForUpdate, userID)
}

func (r *membershipRepository) GetByMembershipID(ctx context.Context, membershipID string) (models.Membership, error) {
	return r.getOne(ctx, "*membershipRepository.GetByMembershipID", getMembershipByMembershipID, membershipID)
}

func (r *membershipRepository) getOne(ctx context.Context, funcName, query string, arg any) (models.Membership, error) {
	log := logger.FromContext(ctx)

	membership, err := scanMembership(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Membership{}, ErrMembershipNotFound
		}
		log.Err(err).Str("func", funcName).Any("key", arg).Msg("failed to get membership")
		return models.Membership{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return membership, nil
}

// Update writes every mutable column of membership. The custom destination
// set is not touched; see ReplaceCustomDestinations.
//
// A unique violation on the membership identifier is reported as
// [ErrMembershipIDTaken] so that the caller can retry the allocation.
func (r *membershipRepository) Update(ctx context.Context, membership models.Membership) (models.Membership, error) {
	log := logger.FromContext(ctx)

	err := r.db.conn(ctx).QueryRowContext(ctx, updateMembership,
		membership.ID,
		string(membership.PlanType),
		membership.MembershipID,
		string(membership.Status),
		string(membership.PaymentStatus),
		membership.TotalDays,
		membership.UsedDays,
		membership.CustomDaysAdded,
		membership.StartDate,
		membership.EndDate,
		membership.ActivatedAt,
		membership.State,
		membership.PaymentAmount,
	).Scan(&membership.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Membership{}, ErrMembershipNotFound
		}

		log.Err(err).
			Str("func", "*membershipRepository.Update").
			Int64("id", membership.ID).
			Msg("failed to update membership")

		if postgresError(err) == pgerrcode.UniqueViolation && postgresConstraint(err) == constraintMembershipID {
			return models.Membership{}, fmt.Errorf("%w: %w", ErrMembershipIDTaken, err)
		}
		return models.Membership{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return membership, nil
}

// MarkExpired persists a lazily derived expiry.
func (r *membershipRepository) MarkExpired(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.conn(ctx).ExecContext(ctx, markMembershipExpired, id); err != nil {
		log.Err(err).Str("func", "*membershipRepository.MarkExpired").Int64("id", id).Msg("failed to mark membership expired")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete hard-deletes the membership and, through ON DELETE CASCADE, its
// custom destination links.
func (r *membershipRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.conn(ctx).ExecContext(ctx, deleteMembership, id)
	if err != nil {
		log.Err(err).Str("func", "*membershipRepository.Delete").Int64("id", id).Msg("failed to delete membership")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// ReplaceCustomDestinations replaces the custom destination set of the
// membership with exactly destinationIDs. An empty slice clears the set.
// Callers should run it inside [DB.WithinTx].
func (r *membershipRepository) ReplaceCustomDestinations(ctx context.Context, id int64, destinationIDs []int64) error {
	log := logger.FromContext(ctx).With().
		Str("func", "*membershipRepository.ReplaceCustomDestinations").
		Int64("id", id).
		Logger()

	if _, err := r.db.conn(ctx).ExecContext(ctx, deleteMembershipDestinations, id); err != nil {
		log.Err(err).Msg("failed to clear custom destinations")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(destinationIDs) == 0 {
		return nil
	}

	query, args, err := buildInsertLinksQuery(ctx, "membership_custom_destinations", "membership_id", id, destinationIDs)
	if err != nil {
		log.Err(err).Msg("failed to build query")
		return err
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Msg("failed to link custom destinations")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrDestinationNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// List returns memberships with their owners, newest first. A nil status
// returns every membership.
func (r *membershipRepository) List(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMembershipsQuery(ctx, status, asOf)
	if err != nil {
		log.Err(err).Str("func", "*membershipRepository.List").Msg("failed to build query")
		return nil, err
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*membershipRepository.List").Msg("failed to list memberships")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.MembershipWithUser, 0)
	for rows.Next() {
		var item models.MembershipWithUser
		item.Membership, err = scanMembership(rows,
			&item.User.ID, &item.User.Name, &item.User.Email, &item.User.Phone)
		if err != nil {
			log.Err(err).Str("func", "*membershipRepository.List").Msg("failed to scan membership row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*membershipRepository.List").Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// scanMembership scans the columns of membershipColumns followed by extra
// destinations.
func scanMembership(row rowScanner, extra ...any) (models.Membership, error) {
	var (
		m             models.Membership
		planType      string
		status        string
		paymentStatus string
		customIDs     string
	)

	dest := []any{
		&m.ID, &m.UserID, &planType, &m.MembershipID, &status, &paymentStatus,
		&m.TotalDays, &m.UsedDays, &m.CustomDaysAdded, &m.StartDate, &m.EndDate, &m.ActivatedAt,
		&m.State, &m.PaymentAmount, &m.CreatedAt, &m.UpdatedAt, &customIDs,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Membership{}, err
	}

	ids, err := parseIDList(customIDs)
	if err != nil {
		return models.Membership{}, err
	}

	m.PlanType = models.PlanType(planType)
	m.Status = models.MembershipStatus(status)
	m.PaymentStatus = models.PaymentStatus(paymentStatus)
	m.CustomDestinationIDs = ids

	return m, nil
}
