package store

import (
	"context"
	"time"

	"github.com/MKhiriev/traveltrek/models"
)

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Transactor scopes repository calls into one atomic unit. Repositories
// called with the ctx handed to fn join the transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	WithinRetryableTx(ctx context.Context, attempts int, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	ListWithMemberships(ctx context.Context) ([]models.UserWithMembership, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership models.Membership) (models.Membership, error)
	GetByID(ctx context.Context, id int64) (models.Membership, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (models.Membership, error)
	GetByUserID(ctx context.Context, userID int64) (models.Membership, error)
	GetByUserIDForUpdate(ctx context.Context, userID int64) (models.Membership, error)
	GetByMembershipID(ctx context.Context, membershipID string) (models.Membership, error)
	Update(ctx context.Context, membership models.Membership) (models.Membership, error)
	// MarkExpired flips an ACTIVE row to EXPIRED; it is a no-op for any
	// other stored status.
	MarkExpired(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ReplaceCustomDestinations(ctx context.Context, id int64, destinationIDs []int64) error
	// List filters on the status derived at asOf, so ACTIVE rows whose end
	// date has passed count as EXPIRED.
	List(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error)
}

// CounterRepository owns the per-year membership identifier counters.
type CounterRepository interface {
	// Next atomically increments and returns the counter for year.
	Next(ctx context.Context, year int) (int64, error)
}

type PlanRepository interface {
	ListActive(ctx context.Context) ([]models.PlanConfig, error)
	ListAll(ctx context.Context) ([]models.PlanConfig, error)
	GetByID(ctx context.Context, id int64) (models.PlanConfig, error)
	GetActiveByType(ctx context.Context, planType models.PlanType) (models.PlanConfig, error)
	SeedDefaults(ctx context.Context, plans []models.PlanConfig) error
	Update(ctx context.Context, id int64, update models.PlanConfigUpdate) error
	ReplaceDestinations(ctx context.Context, id int64, destinationIDs []int64) error
}

type DestinationRepository interface {
	List(ctx context.Context) ([]models.Destination, error)
	ListAvailable(ctx context.Context) ([]models.Destination, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Destination, error)
	GetByID(ctx context.Context, id int64) (models.Destination, error)
	Create(ctx context.Context, destination models.Destination) (models.Destination, error)
	Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment models.Payment) (models.Payment, error)
}

type RejectionRepository interface {
	Create(ctx context.Context, rejection models.Rejection) error
}

type ChatRepository interface {
	Save(ctx context.Context, message models.ChatMessage) (models.ChatMessage, error)
	History(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error)
	// Recent returns the newest limit messages, oldest first.
	Recent(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error)
	Clear(ctx context.Context, userID int64) error
}

type BrochureRepository interface {
	List(ctx context.Context) ([]models.Brochure, error)
	Create(ctx context.Context, brochure models.Brochure) (models.Brochure, error)
	Delete(ctx context.Context, id int64) error
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (models.DashboardStats, error)
}

// HealthChecker reports database reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
