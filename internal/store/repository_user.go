package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// All methods obtain a context-scoped logger via [logger.FromContext] and
// join the transaction carried by ctx, if any.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user and returns it with server-assigned fields.
//
// Error handling:
//   - unique_violation (23505) → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.conn(ctx).QueryRowContext(ctx, createUser,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.PasswordSet, string(user.Role), user.GoogleID)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error creating user")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// GetByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetByID", getUserByID, id)
}

// GetByEmail returns the user with the given email or [ErrUserNotFound].
// The email is expected to be normalized by the caller.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetByEmail", getUserByEmail, email)
}

func (r *userRepository) getOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// Update applies the non-nil fields of update and returns the new row.
func (r *userRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(ctx, id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", id).Msg("failed to build query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", id).Msg("failed to update user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// ListWithMemberships returns every user, newest first, each with a summary
// of the membership they own, if any.
func (r *userRepository) ListWithMemberships(ctx context.Context) ([]models.UserWithMembership, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, listUsersWithMemberships)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListWithMemberships").Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.UserWithMembership, 0)
	for rows.Next() {
		var (
			item         models.UserWithMembership
			role         string
			membershipPK sql.NullInt64
			planType     sql.NullString
			status       sql.NullString
			summary      models.MembershipSummary
		)

		if err = rows.Scan(
			&item.ID, &item.Name, &item.Email, &item.Phone, &item.PasswordSet, &role, &item.CreatedAt,
			&membershipPK, &planType, &status, &summary.MembershipID, &summary.EndDate,
		); err != nil {
			log.Err(err).Str("func", "*userRepository.ListWithMemberships").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		item.Role = models.Role(role)
		if membershipPK.Valid {
			summary.ID = membershipPK.Int64
			summary.PlanType = models.PlanType(planType.String)
			summary.Status = models.MembershipStatus(status.String)
			item.Membership = &summary
		}
		users = append(users, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListWithMemberships").Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user models.User
		role string
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.PasswordSet, &role, &user.GoogleID, &user.FCMToken, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	user.Role = models.Role(role)
	return user, nil
}
