package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/traveltrek/internal/mock"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Enroll
// ─────────────────────────────────────────────

func TestEnroll_CreatesUserAndPendingMembership(t *testing.T) {
	f := newMembershipFixture()
	var createdUser models.User
	var createdMembership models.Membership
	f.users.createFn = func(ctx context.Context, user models.User) (models.User, error) {
		createdUser = user
		user.ID = 7
		return user, nil
	}
	f.memberships.createFn = func(ctx context.Context, m models.Membership) (models.Membership, error) {
		createdMembership = m
		m.ID = 70
		return m, nil
	}
	state := "Kerala"

	res, err := f.service(nil).Enroll(context.Background(), models.EnrollRequest{
		Name:     " Asha ",
		Email:    "Asha@Example.com",
		Phone:    "9800000000",
		PlanType: models.PlanThreeYear,
		State:    &state,
	})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", createdUser.Email)
	assert.Equal(t, "Asha", createdUser.Name)
	assert.Nil(t, createdUser.PasswordHash)
	assert.False(t, createdUser.PasswordSet)
	assert.Equal(t, models.StatusPending, createdMembership.Status)
	assert.Equal(t, models.PaymentUnpaid, createdMembership.PaymentStatus)
	assert.Equal(t, 18, createdMembership.TotalDays)
	assert.Equal(t, int64(24999), createdMembership.PaymentAmount)
	assert.Equal(t, int64(7), res.UserID)
	assert.Equal(t, int64(70), res.MembershipID)
	assert.Equal(t, models.StatusPending, res.Status)
	assert.Equal(t, &state, res.State)
	assert.Equal(t, 1, f.tx.txCalls)
}

func TestEnroll_DuplicateEmail(t *testing.T) {
	f := newMembershipFixture()
	f.users.getByEmailFn = func(ctx context.Context, email string) (models.User, error) {
		return models.User{ID: 1, Email: email}, nil
	}

	_, err := f.service(nil).Enroll(context.Background(), models.EnrollRequest{
		Name: "Asha", Email: "asha@example.com", PlanType: models.PlanOneYear,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestEnroll_InvalidPlan(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.service(nil).Enroll(context.Background(), models.EnrollRequest{
		Name: "Asha", Email: "asha@example.com", PlanType: "2Y",
	})

	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.Zero(t, f.tx.txCalls)
}

func TestEnroll_RetiredPlan(t *testing.T) {
	f := newMembershipFixture()
	f.plans.plans[0].IsActive = false

	_, err := f.service(nil).Enroll(context.Background(), models.EnrollRequest{
		Name: "Asha", Email: "asha@example.com", PlanType: models.PlanOneYear,
	})

	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestEnroll_SeedsEmptyCatalog(t *testing.T) {
	f := newMembershipFixture()
	f.plans.plans = nil
	f.users.createFn = func(ctx context.Context, user models.User) (models.User, error) { return user, nil }
	f.memberships.createFn = func(ctx context.Context, m models.Membership) (models.Membership, error) { return m, nil }

	_, err := f.service(nil).Enroll(context.Background(), models.EnrollRequest{
		Name: "Asha", Email: "asha@example.com", PlanType: models.PlanFiveYear,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.plans.seeded)
}

// ─────────────────────────────────────────────
// ChoosePlan
// ─────────────────────────────────────────────

func TestChoosePlan_NoMembership_CreatesPending(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.createFn = func(ctx context.Context, m models.Membership) (models.Membership, error) {
		m.ID = 3
		return m, nil
	}

	res, err := f.service(nil).ChoosePlan(context.Background(), 1, models.PlanOneYear)

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Membership.ID)
	assert.Equal(t, models.StatusPending, res.Membership.Status)
	assert.Equal(t, "1-Year Membership", res.PlanName)
	assert.Equal(t, int64(9999), res.Price)
}

func TestChoosePlan_Active(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 1, 0)), nil
	}

	_, err := f.service(nil).ChoosePlan(context.Background(), 1, models.PlanOneYear)

	assert.ErrorIs(t, err, ErrMembershipAlreadyActive)
}

func TestChoosePlan_Pending_ReturnsExisting(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return pendingMembership(), nil
	}

	_, err := f.service(nil).ChoosePlan(context.Background(), 1, models.PlanThreeYear)

	var pending *AlreadyPendingError
	require.ErrorAs(t, err, &pending)
	assert.ErrorIs(t, err, ErrMembershipAlreadyPending)
	assert.Equal(t, int64(10), pending.Membership.ID)
}

func TestChoosePlan_Expired_ResetsToPending(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 0, -1)), nil
	}

	res, err := f.service(nil).ChoosePlan(context.Background(), 1, models.PlanThreeYear)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, res.Membership.Status)
	assert.Equal(t, models.PlanThreeYear, res.Membership.PlanType)
	assert.Nil(t, res.Membership.MembershipID)
	assert.Nil(t, res.Membership.EndDate)
	assert.Zero(t, res.Membership.UsedDays)
}

// ─────────────────────────────────────────────
// Get
// ─────────────────────────────────────────────

func TestGet_NoMembership_ReturnsPlans(t *testing.T) {
	f := newMembershipFixture()

	state, err := f.service(nil).Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, state.Membership)
	assert.Equal(t, models.StatusNone, state.Status)
	assert.Len(t, state.Plans, 3)
	assert.NotEmpty(t, state.Message)
}

func TestGet_PersistsLazyExpiry(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 0, -1)), nil
	}
	var expired []int64
	f.memberships.markExpiredFn = func(ctx context.Context, id int64) error {
		expired = append(expired, id)
		return nil
	}

	state, err := f.service(nil).Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, expired)
	assert.Equal(t, models.StatusExpired, state.Status)
	require.NotNil(t, state.Membership)
	assert.Equal(t, models.StatusExpired, state.Membership.Status)
	assert.Equal(t, 4, state.Membership.RemainingDays)
}

func TestGet_ActiveWithCustomDestinations(t *testing.T) {
	f := newMembershipFixture()
	f.dests.destinations = []models.Destination{{ID: 1, Name: "Manali"}, {ID: 2, Name: "Goa"}}
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		m := activeMembership(testNow.AddDate(0, 3, 0))
		m.CustomDaysAdded = 4
		m.CustomDestinationIDs = []int64{2}
		return m, nil
	}

	state, err := f.service(nil).Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, state.Status)
	assert.Equal(t, 8, state.Membership.RemainingDays)
	assert.Equal(t, []string{"Goa"}, state.Membership.CustomDestinations)
}

func TestGet_ExpiryWriteFails(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 0, -1)), nil
	}
	f.memberships.markExpiredFn = func(ctx context.Context, id int64) error { return errors.New("db down") }

	_, err := f.service(nil).Get(context.Background(), 1)

	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Cancel / MarkPaymentDone
// ─────────────────────────────────────────────

func TestCancel_Pending(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	var deleted int64
	f.memberships.deleteFn = func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}

	require.NoError(t, f.service(nil).Cancel(context.Background(), 1))
	assert.Equal(t, int64(10), deleted)
}

func TestCancel_ActiveIsRefused(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(1, 0, 0)), nil
	}

	err := f.service(nil).Cancel(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInvalidMembershipState)
}

func TestCancel_NoMembership(t *testing.T) {
	f := newMembershipFixture()

	err := f.service(nil).Cancel(context.Background(), 1)

	assert.ErrorIs(t, err, store.ErrMembershipNotFound)
}

func TestMarkPaymentDone_RecordsPaymentAndKeepsPending(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByUserIDFn = func(ctx context.Context, userID int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	var updated models.Membership
	f.memberships.updateFn = func(ctx context.Context, m models.Membership) (models.Membership, error) {
		updated = m
		return m, nil
	}

	err := f.service(nil).MarkPaymentDone(context.Background(), 1, models.PaymentDoneRequest{TransactionID: ptr("UTR123")})

	require.NoError(t, err)
	require.Len(t, f.payments.created, 1)
	assert.Equal(t, "manual", f.payments.created[0].Method)
	assert.Equal(t, int64(9999), f.payments.created[0].Amount)
	assert.Equal(t, ptr("UTR123"), f.payments.created[0].GatewayReference)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, models.StatusPending, updated.Status)
}

// ─────────────────────────────────────────────
// Activate
// ─────────────────────────────────────────────

func TestActivate_AllocatesIdentifierAndNotifiesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	f.counters.nextFn = func(ctx context.Context, year int) (int64, error) {
		assert.Equal(t, 2025, year)
		return 7, nil
	}
	notifier.EXPECT().
		NotifyActivation(gomock.Any(), gomock.Any(), "2025000007", models.PlanOneYear).
		Return(nil)

	res, err := f.service(notifier).Activate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "2025000007", res.MembershipID)
	assert.Equal(t, models.StatusActive, res.Membership.Status)
	assert.Equal(t, models.PaymentPaid, res.Membership.PaymentStatus)
	assert.Equal(t, testNow.AddDate(1, 0, 0), *res.Membership.EndDate)
}

func TestActivate_AlreadyActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 6, 0)), nil
	}

	_, err := f.service(notifier).Activate(context.Background(), 10)

	assert.ErrorIs(t, err, ErrMembershipAlreadyActive)
}

func TestActivate_ExpiredCanBeReactivated(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyActivation(gomock.Any(), gomock.Any(), "2025000002", models.PlanOneYear).Return(nil)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 0, -3)), nil
	}
	f.counters.nextFn = func(ctx context.Context, year int) (int64, error) { return 2, nil }

	res, err := f.service(notifier).Activate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "2025000002", res.MembershipID)
	assert.Equal(t, testNow, *res.Membership.StartDate)
}

func TestActivate_RetriesOnIdentifierCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyActivation(gomock.Any(), gomock.Any(), "2025000002", models.PlanOneYear).Return(nil)

	f := newMembershipFixture()
	f.tx.retryOn = []error{store.ErrMembershipIDTaken}
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	var counter int64
	f.counters.nextFn = func(ctx context.Context, year int) (int64, error) {
		counter++
		return counter, nil
	}
	f.memberships.updateFn = func(ctx context.Context, m models.Membership) (models.Membership, error) {
		if *m.MembershipID == "2025000001" {
			return models.Membership{}, store.ErrMembershipIDTaken
		}
		return m, nil
	}

	res, err := f.service(notifier).Activate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "2025000002", res.MembershipID)
	assert.Equal(t, 2, f.tx.attempts)
}

func TestActivate_NotifyFailureIsNotReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyActivation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("queue full"))

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	f.counters.nextFn = func(ctx context.Context, year int) (int64, error) { return 1, nil }

	res, err := f.service(notifier).Activate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "2025000001", res.MembershipID)
}

func TestActivate_FailedTransactionSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	f.counters.nextFn = func(ctx context.Context, year int) (int64, error) { return 0, errors.New("deadlock") }

	_, err := f.service(notifier).Activate(context.Background(), 10)

	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Reject
// ─────────────────────────────────────────────

func TestReject_WritesAuditAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyRejection(gomock.Any(), gomock.Any(), models.PlanOneYear, "payment not received").Return(nil)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}
	var deleted int64
	f.memberships.deleteFn = func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}

	res, err := f.service(notifier).Reject(context.Background(), 10, "  payment not received ")

	require.NoError(t, err)
	assert.Equal(t, int64(10), deleted)
	assert.Equal(t, "payment not received", res.Reason)
	require.Len(t, f.rejections.created, 1)
	assert.Equal(t, int64(1), f.rejections.created[0].UserID)
	assert.Equal(t, testNow, f.rejections.created[0].RejectedAt)
}

func TestReject_ActiveIsRefused(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)

	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return activeMembership(testNow.AddDate(0, 1, 0)), nil
	}

	_, err := f.service(notifier).Reject(context.Background(), 10, "")

	assert.ErrorIs(t, err, ErrInvalidMembershipState)
	assert.Empty(t, f.rejections.created)
}

// ─────────────────────────────────────────────
// Extend / ApplyOverride / RecordUsage
// ─────────────────────────────────────────────

func TestExtend_AddsDaysAndEndDate(t *testing.T) {
	f := newMembershipFixture()
	end := testNow.AddDate(0, 2, 0)
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return activeMembership(end), nil
	}

	got, err := f.service(nil).Extend(context.Background(), 10, models.MembershipExtension{
		AdditionalDays:    ptr(3),
		ExtendEndDateDays: ptr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, 9, got.TotalDays)
	assert.Equal(t, end.AddDate(0, 0, 30), *got.EndDate)
}

func TestExtend_PendingKeepsNilEndDate(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		return pendingMembership(), nil
	}

	got, err := f.service(nil).Extend(context.Background(), 10, models.MembershipExtension{ExtendEndDateDays: ptr(10)})

	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
	assert.Equal(t, 6, got.TotalDays)
}

func TestExtend_Validation(t *testing.T) {
	f := newMembershipFixture()
	svc := f.service(nil)

	_, err := svc.Extend(context.Background(), 10, models.MembershipExtension{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	_, err = svc.Extend(context.Background(), 10, models.MembershipExtension{AdditionalDays: ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestApplyOverride_ReplacesDestinations(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		m := activeMembership(testNow.AddDate(1, 0, 0))
		m.CustomDestinationIDs = []int64{1, 2}
		return m, nil
	}
	var replaced []int64
	f.memberships.replaceCustomFn = func(ctx context.Context, id int64, ids []int64) error {
		replaced = ids
		return nil
	}

	got, err := f.service(nil).ApplyOverride(context.Background(), 10, models.MembershipOverride{
		CustomDaysAdded:      ptr(5),
		CustomDestinationIDs: &[]int64{3, 3, 4},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, replaced)
	assert.Equal(t, []int64{3, 4}, got.CustomDestinationIDs)
	assert.Equal(t, 5, got.CustomDaysAdded)
}

func TestApplyOverride_EmptyListClears(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
		m := pendingMembership()
		m.CustomDestinationIDs = []int64{1}
		return m, nil
	}
	var replaced []int64
	f.memberships.replaceCustomFn = func(ctx context.Context, id int64, ids []int64) error {
		replaced = ids
		return nil
	}

	got, err := f.service(nil).ApplyOverride(context.Background(), 10, models.MembershipOverride{CustomDestinationIDs: &[]int64{}})

	require.NoError(t, err)
	assert.Empty(t, replaced)
	assert.Empty(t, got.CustomDestinationIDs)
}

func TestApplyOverride_Empty(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.service(nil).ApplyOverride(context.Background(), 10, models.MembershipOverride{})

	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestRecordUsage(t *testing.T) {
	tests := []struct {
		name    string
		m       models.Membership
		days    int
		wantErr error
		want    int
	}{
		{"within allotment", activeMembership(testNow.AddDate(1, 0, 0)), 4, nil, 6},
		{"overshoot", activeMembership(testNow.AddDate(1, 0, 0)), 5, ErrInsufficientDays, 0},
		{"expired", activeMembership(testNow.AddDate(0, 0, -1)), 1, ErrInvalidMembershipState, 0},
		{"pending", pendingMembership(), 1, ErrInvalidMembershipState, 0},
		{"zero days", activeMembership(testNow.AddDate(1, 0, 0)), 0, ErrInvalidDataProvided, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMembershipFixture()
			f.memberships.getByIDFn = func(ctx context.Context, id int64) (models.Membership, error) {
				return tt.m, nil
			}

			got, err := f.service(nil).RecordUsage(context.Background(), 10, tt.days)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UsedDays)
		})
	}
}

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestList_DerivesStatusWithoutWriting(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.listFn = func(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error) {
		return []models.MembershipWithUser{
			{Membership: activeMembership(testNow.Add(-time.Minute))},
			{Membership: pendingMembership()},
		}, nil
	}

	got, err := f.service(nil).List(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.StatusExpired, got[0].Status)
	assert.Equal(t, models.StatusPending, got[1].Status)
}

func TestList_FiltersOnDerivedStatus(t *testing.T) {
	lapsed := activeMembership(testNow.Add(-time.Minute))
	current := activeMembership(testNow.Add(time.Hour))
	current.ID = 11
	rows := []models.MembershipWithUser{{Membership: lapsed}, {Membership: current}}

	tests := []struct {
		name    string
		status  models.MembershipStatus
		wantIDs []int64
	}{
		{"active omits lapsed", models.StatusActive, []int64{11}},
		{"expired includes lapsed", models.StatusExpired, []int64{10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMembershipFixture()
			var gotAsOf time.Time
			f.memberships.listFn = func(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error) {
				gotAsOf = asOf
				var out []models.MembershipWithUser
				for _, r := range rows {
					if DeriveStatus(r.Membership, asOf) == *status {
						out = append(out, r)
					}
				}
				return out, nil
			}

			got, err := f.service(nil).List(context.Background(), &tt.status)

			require.NoError(t, err)
			assert.Equal(t, testNow, gotAsOf)
			ids := make([]int64, 0, len(got))
			for _, m := range got {
				assert.Equal(t, tt.status, m.Status)
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestList_DropsRowsWhoseDerivedStatusDiffers(t *testing.T) {
	f := newMembershipFixture()
	f.memberships.listFn = func(ctx context.Context, status *models.MembershipStatus, asOf time.Time) ([]models.MembershipWithUser, error) {
		return []models.MembershipWithUser{{Membership: activeMembership(testNow.Add(-time.Minute))}}, nil
	}

	status := models.StatusActive
	got, err := f.service(nil).List(context.Background(), &status)

	require.NoError(t, err)
	assert.Empty(t, got)
}
