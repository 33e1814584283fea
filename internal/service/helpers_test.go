package service

import (
	"context"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

var testNow = time.Date(2025, time.June, 5, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func ptr[T any](v T) *T { return &v }

// ─────────────────────────────────────────────
// Transactor
// ─────────────────────────────────────────────

// fakeTransactor runs fn directly. WithinRetryableTx reruns fn while it
// returns an error listed in retryOn, up to attempts times.
type fakeTransactor struct {
	retryOn  []error
	txCalls  int
	attempts int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txCalls++
	return fn(ctx)
}

func (f *fakeTransactor) WithinRetryableTx(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	f.txCalls++
	var err error
	for i := 0; i < attempts; i++ {
		f.attempts++
		if err = fn(ctx); err == nil || !f.retryable(err) {
			return err
		}
	}
	return err
}

func (f *fakeTransactor) retryable(err error) bool {
	for _, r := range f.retryOn {
		if err == r {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────
// UserRepository
// ─────────────────────────────────────────────

type fakeUserRepository struct {
	createFn     func(ctx context.Context, user models.User) (models.User, error)
	getByIDFn    func(ctx context.Context, id int64) (models.User, error)
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	updateFn     func(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	listFn       func(ctx context.Context) ([]models.UserWithMembership, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	return f.createFn(ctx, user)
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	if f.getByIDFn == nil {
		return models.User{ID: id, Name: "Asha", Email: "asha@example.com"}, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if f.getByEmailFn == nil {
		return models.User{}, store.ErrUserNotFound
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	return f.updateFn(ctx, id, update)
}

func (f *fakeUserRepository) ListWithMemberships(ctx context.Context) ([]models.UserWithMembership, error) {
	return f.listFn(ctx)
}

// ─────────────────────────────────────────────
// MembershipRepository
// ─────────────────────────────────────────────

type fakeMembershipRepository struct {
	createFn            func(ctx context.Context, m models.Membership) (models.Membership, error)
	getByIDFn           func(ctx context.Context, id int64) (models.Membership, error)
	getByUserIDFn       func(ctx context.Context, userID int64) (models.Membership, error)
	getByMembershipIDFn func(ctx context.Context, membershipID string) (models.Membership, error)
	updateFn            func(ctx context.Context, m models.Membership) (models.Membership, error)
	markExpiredFn       func(ctx context.Context, id int64) error
	deleteFn            func(ctx context.Context, id int64) error
	replaceCustomFn     func(ctx context.Context, id int64, ids []int64) error
	listFn              func(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error)
}

func (f *fakeMembershipRepository) Create(ctx context.Context, m models.Membership) (models.Membership, error) {
	return f.createFn(ctx, m)
}

func (f *fakeMembershipRepository) GetByID(ctx context.Context, id int64) (models.Membership, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeMembershipRepository) GetByIDForUpdate(ctx context.Context, id int64) (models.Membership, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeMembershipRepository) GetByUserID(ctx context.Context, userID int64) (models.Membership, error) {
	if f.getByUserIDFn == nil {
		return models.Membership{}, store.ErrMembershipNotFound
	}
	return f.getByUserIDFn(ctx, userID)
}

func (f *fakeMembershipRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (models.Membership, error) {
	return f.GetByUserID(ctx, userID)
}

func (f *fakeMembershipRepository) GetByMembershipID(ctx context.Context, membershipID string) (models.Membership, error) {
	return f.getByMembershipIDFn(ctx, membershipID)
}

func (f *fakeMembershipRepository) Update(ctx context.Context, m models.Membership) (models.Membership, error) {
	if f.updateFn == nil {
		return m, nil
	}
	return f.updateFn(ctx, m)
}

func (f *fakeMembershipRepository) MarkExpired(ctx context.Context, id int64) error {
	return f.markExpiredFn(ctx, id)
}

func (f *fakeMembershipRepository) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeMembershipRepository) ReplaceCustomDestinations(ctx context.Context, id int64, ids []int64) error {
	return f.replaceCustomFn(ctx, id, ids)
}

func (f *fakeMembershipRepository) List(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error) {
	return f.listFn(ctx, status, asOf)
}

// ─────────────────────────────────────────────
// Remaining repositories
// ─────────────────────────────────────────────

type fakeCounterRepository struct {
	nextFn func(ctx context.Context, year int) (int64, error)
}

func (f *fakeCounterRepository) Next(ctx context.Context, year int) (int64, error) {
	return f.nextFn(ctx, year)
}

type fakePlanRepository struct {
	plans     []models.PlanConfig
	seeded    int
	listErr   error
	updateFn  func(ctx context.Context, id int64, update models.PlanConfigUpdate) error
	replaceFn func(ctx context.Context, id int64, ids []int64) error
	getByIDFn func(ctx context.Context, id int64) (models.PlanConfig, error)
}

func (f *fakePlanRepository) ListActive(ctx context.Context) ([]models.PlanConfig, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.PlanConfig
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepository) ListAll(ctx context.Context) ([]models.PlanConfig, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.plans, nil
}

func (f *fakePlanRepository) GetByID(ctx context.Context, id int64) (models.PlanConfig, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	for _, p := range f.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PlanConfig{}, store.ErrPlanNotFound
}

func (f *fakePlanRepository) GetActiveByType(ctx context.Context, planType models.PlanType) (models.PlanConfig, error) {
	for _, p := range f.plans {
		if p.PlanType == planType && p.IsActive {
			return p, nil
		}
	}
	return models.PlanConfig{}, store.ErrPlanNotFound
}

func (f *fakePlanRepository) SeedDefaults(ctx context.Context, plans []models.PlanConfig) error {
	f.seeded++
	for i, p := range plans {
		p.ID = int64(i + 1)
		f.plans = append(f.plans, p)
	}
	return nil
}

func (f *fakePlanRepository) Update(ctx context.Context, id int64, update models.PlanConfigUpdate) error {
	return f.updateFn(ctx, id, update)
}

func (f *fakePlanRepository) ReplaceDestinations(ctx context.Context, id int64, ids []int64) error {
	return f.replaceFn(ctx, id, ids)
}

type fakeDestinationRepository struct {
	destinations []models.Destination
	listByIDsErr error
	createFn     func(ctx context.Context, d models.Destination) (models.Destination, error)
}

func (f *fakeDestinationRepository) List(ctx context.Context) ([]models.Destination, error) {
	return f.destinations, nil
}

func (f *fakeDestinationRepository) ListAvailable(ctx context.Context) ([]models.Destination, error) {
	var out []models.Destination
	for _, d := range f.destinations {
		if d.Status == models.DestinationAvailable {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDestinationRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Destination, error) {
	if f.listByIDsErr != nil {
		return nil, f.listByIDsErr
	}
	var out []models.Destination
	for _, id := range ids {
		for _, d := range f.destinations {
			if d.ID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDestinationRepository) GetByID(ctx context.Context, id int64) (models.Destination, error) {
	for _, d := range f.destinations {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Destination{}, store.ErrDestinationNotFound
}

func (f *fakeDestinationRepository) Create(ctx context.Context, d models.Destination) (models.Destination, error) {
	return f.createFn(ctx, d)
}

func (f *fakeDestinationRepository) Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error) {
	return models.Destination{}, nil
}

func (f *fakeDestinationRepository) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakePaymentRepository struct {
	created []models.Payment
}

func (f *fakePaymentRepository) Create(ctx context.Context, payment models.Payment) (models.Payment, error) {
	f.created = append(f.created, payment)
	payment.ID = int64(len(f.created))
	return payment, nil
}

type fakeRejectionRepository struct {
	created []models.Rejection
	err     error
}

func (f *fakeRejectionRepository) Create(ctx context.Context, rejection models.Rejection) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, rejection)
	return nil
}

type fakeChatRepository struct {
	saved   []models.ChatMessage
	history []models.ChatMessage
	cleared bool
}

func (f *fakeChatRepository) Save(ctx context.Context, message models.ChatMessage) (models.ChatMessage, error) {
	f.saved = append(f.saved, message)
	message.ID = int64(len(f.saved))
	return message, nil
}

func (f *fakeChatRepository) History(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	return f.history[:min(limit, len(f.history))], nil
}

func (f *fakeChatRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	return f.history[max(0, len(f.history)-limit):], nil
}

func (f *fakeChatRepository) Clear(ctx context.Context, userID int64) error {
	f.cleared = true
	return nil
}

// ─────────────────────────────────────────────
// Ephemeral stores
// ─────────────────────────────────────────────

type otpKey struct{ owner, purpose string }

type otpEntry struct{ code, pending string }

// fakeOTPStore keeps entries in a map and consumes them on a match.
type fakeOTPStore struct {
	entries map[otpKey]otpEntry
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{entries: make(map[otpKey]otpEntry)}
}

func (f *fakeOTPStore) Store(ctx context.Context, owner, purpose, pendingValue, code string) error {
	f.entries[otpKey{owner, purpose}] = otpEntry{code: code, pending: pendingValue}
	return nil
}

func (f *fakeOTPStore) Verify(ctx context.Context, owner, purpose, code string) (models.OTPResult, error) {
	e, ok := f.entries[otpKey{owner, purpose}]
	if !ok || e.code != code {
		return models.OTPResult{}, nil
	}
	delete(f.entries, otpKey{owner, purpose})
	return models.OTPResult{Valid: true, PendingValue: e.pending}, nil
}

func (f *fakeOTPStore) Sweep(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeOTPStore) code(owner, purpose string) string {
	return f.entries[otpKey{owner, purpose}].code
}

type fakeRateLimiter struct {
	result models.RateLimitResult
	err    error
	owners []string
}

func (f *fakeRateLimiter) Check(ctx context.Context, owner string) (models.RateLimitResult, error) {
	f.owners = append(f.owners, owner)
	return f.result, f.err
}

func (f *fakeRateLimiter) Sweep(ctx context.Context) (int, error) { return 0, nil }

// fakeIdentityVerifier returns identity for every token and records the
// last token it saw.
type fakeIdentityVerifier struct {
	identity models.GoogleIdentity
	err      error
	token    string
}

func (f *fakeIdentityVerifier) Verify(ctx context.Context, idToken string) (models.GoogleIdentity, error) {
	f.token = idToken
	return f.identity, f.err
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

func activePlans() []models.PlanConfig {
	plans := models.DefaultPlans()
	for i := range plans {
		plans[i].ID = int64(i + 1)
	}
	return plans
}

func pendingMembership() models.Membership {
	return models.Membership{
		ID:            10,
		UserID:        1,
		PlanType:      models.PlanOneYear,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentUnpaid,
		TotalDays:     6,
		PaymentAmount: 9999,
	}
}

func activeMembership(end time.Time) models.Membership {
	start := end.AddDate(-1, 0, 0)
	id := "2024000001"
	return models.Membership{
		ID:            10,
		UserID:        1,
		PlanType:      models.PlanOneYear,
		MembershipID:  &id,
		Status:        models.StatusActive,
		PaymentStatus: models.PaymentPaid,
		TotalDays:     6,
		UsedDays:      2,
		StartDate:     &start,
		EndDate:       &end,
		ActivatedAt:   &start,
		PaymentAmount: 9999,
	}
}

type membershipFixture struct {
	tx          *fakeTransactor
	users       *fakeUserRepository
	memberships *fakeMembershipRepository
	counters    *fakeCounterRepository
	plans       *fakePlanRepository
	dests       *fakeDestinationRepository
	payments    *fakePaymentRepository
	rejections  *fakeRejectionRepository
}

func newMembershipFixture() *membershipFixture {
	return &membershipFixture{
		tx:          &fakeTransactor{},
		users:       &fakeUserRepository{},
		memberships: &fakeMembershipRepository{},
		counters:    &fakeCounterRepository{},
		plans:       &fakePlanRepository{plans: activePlans()},
		dests:       &fakeDestinationRepository{},
		payments:    &fakePaymentRepository{},
		rejections:  &fakeRejectionRepository{},
	}
}

func (f *membershipFixture) service(notifier Notifier) *membershipService {
	storages := &store.Storages{
		Transactor:            f.tx,
		UserRepository:        f.users,
		MembershipRepository:  f.memberships,
		CounterRepository:     f.counters,
		PlanRepository:        f.plans,
		DestinationRepository: f.dests,
		PaymentRepository:     f.payments,
		RejectionRepository:   f.rejections,
	}
	plans := NewPlanService(f.tx, f.plans, logger.Nop()).(*planService)
	s := NewMembershipService(storages, plans, notifier, logger.Nop()).(*membershipService)
	s.now = fixedNow
	return s
}
