// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var membershipRowColumns = []string{
	"id", "user_id", "plan_type", "membership_id", "status", "payment_status",
	"total_days", "used_days", "custom_days_added", "start_date", "end_date", "activated_at",
	"state", "payment_amount", "created_at", "updated_at", "custom_destination_ids",
}

type membershipRow struct {
	id           int64
	userID       int64
	planType     string
	membershipID driver.Value
	status       string
	total        int
	used         int
	custom       int
	start        driver.Value
	end          driver.Value
	customIDs    string
}

func (r membershipRow) values(now time.Time) []driver.Value {
	return []driver.Value{
		r.id, r.userID, r.planType, r.membershipID, r.status, "UNPAID",
		r.total, r.used, r.custom, r.start, r.end, r.start,
		nil, 9999, now, now, r.customIDs,
	}
}

func newTestMembershipRepo(t *testing.T) (MembershipRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewMembershipRepository(newDBFromSQL(db), logger.Nop()), mock
}

func TestMembershipCreate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO memberships").
					WithArgs(int64(5), "3Y", "PENDING", "UNPAID", 18, nil, int64(24999)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
			},
		},
		{
			name: "user already owns a membership",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO memberships").WillReturnError(pgError(pgerrcode.UniqueViolation))
			},
			wantErr: ErrMembershipAlreadyExists,
		},
		{
			name: "user missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO memberships").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO memberships").WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestMembershipRepo(t)
			tt.setup(mock)

			created, err := repo.Create(testContext(), models.Membership{
				UserID:        5,
				PlanType:      models.PlanThreeYear,
				Status:        models.StatusPending,
				PaymentStatus: models.PaymentUnpaid,
				TotalDays:     18,
				PaymentAmount: 24999,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(11), created.ID)
			assert.Equal(t, []int64{}, created.CustomDestinationIDs)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMembershipGetByID(t *testing.T) {
	now := time.Now()
	start := now.AddDate(0, -1, 0)
	end := start.AddDate(1, 0, 0)

	t.Run("scans custom destinations", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)

		row := membershipRow{
			id: 1, userID: 2, planType: "1Y", membershipID: "2026000001", status: "ACTIVE",
			total: 6, used: 2, custom: 3, start: start, end: end, customIDs: "4,9",
		}
		mock.ExpectQuery(regexp.QuoteMeta("WHERE m.id = $1")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(membershipRowColumns).AddRow(row.values(now)...))

		m, err := repo.GetByID(testContext(), 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, m.Status)
		assert.Equal(t, models.PlanOneYear, m.PlanType)
		require.NotNil(t, m.MembershipID)
		assert.Equal(t, "2026000001", *m.MembershipID)
		assert.Equal(t, []int64{4, 9}, m.CustomDestinationIDs)
		assert.Equal(t, 7, m.RemainingDays())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE m.id = $1")).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(testContext(), 1)
		assert.ErrorIs(t, err, ErrMembershipNotFound)
	})

	t.Run("for update locks the row", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)

		row := membershipRow{id: 1, userID: 2, planType: "5Y", status: "PENDING", total: 30}
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF m")).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(membershipRowColumns).AddRow(row.values(now)...))

		m, err := repo.GetByIDForUpdate(testContext(), 1)
		require.NoError(t, err)
		assert.Nil(t, m.MembershipID)
		assert.Nil(t, m.StartDate)
		assert.Empty(t, m.CustomDestinationIDs)
	})
}

func TestMembershipUpdate_IdentifierCollision(t *testing.T) {
	repo, mock := newTestMembershipRepo(t)

	mock.ExpectQuery("UPDATE memberships SET").
		WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, constraintMembershipID))

	id := "2026000001"
	_, err := repo.Update(testContext(), models.Membership{ID: 1, MembershipID: &id})
	assert.ErrorIs(t, err, ErrMembershipIDTaken)
}

func TestMembershipUpdate_Success(t *testing.T) {
	repo, mock := newTestMembershipRepo(t)

	now := time.Now()
	id := "2026000002"
	m := models.Membership{
		ID: 1, PlanType: models.PlanOneYear, MembershipID: &id,
		Status: models.StatusActive, PaymentStatus: models.PaymentPaid,
		TotalDays: 6, StartDate: &now, PaymentAmount: 9999,
	}

	mock.ExpectQuery("UPDATE memberships SET").
		WithArgs(int64(1), "1Y", id, "ACTIVE", "PAID", 6, 0, 0, now, nil, nil, nil, int64(9999)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	updated, err := repo.Update(testContext(), m)
	require.NoError(t, err)
	assert.Equal(t, now, updated.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)
		mock.ExpectExec("DELETE FROM memberships").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(testContext(), 3))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)
		mock.ExpectExec("DELETE FROM memberships").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(testContext(), 3), ErrMembershipNotFound)
	})
}

func TestMembershipMarkExpired(t *testing.T) {
	repo, mock := newTestMembershipRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'EXPIRED'")).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkExpired(testContext(), 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipReplaceCustomDestinations(t *testing.T) {
	t.Run("replaces set", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)

		mock.ExpectExec("DELETE FROM membership_custom_destinations").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO membership_custom_destinations (membership_id,destination_id) VALUES ($1,$2),($3,$4)")).
			WithArgs(int64(1), int64(4), int64(1), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.ReplaceCustomDestinations(testContext(), 1, []int64{4, 9}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set only clears", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)

		mock.ExpectExec("DELETE FROM membership_custom_destinations").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.ReplaceCustomDestinations(testContext(), 1, []int64{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown destination", func(t *testing.T) {
		repo, mock := newTestMembershipRepo(t)

		mock.ExpectExec("DELETE FROM membership_custom_destinations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO membership_custom_destinations").
			WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		err := repo.ReplaceCustomDestinations(testContext(), 1, []int64{404})
		assert.ErrorIs(t, err, ErrDestinationNotFound)
	})
}

func TestMembershipList_FilterByStatus(t *testing.T) {
	repo, mock := newTestMembershipRepo(t)

	now := time.Now()
	row := membershipRow{id: 1, userID: 2, planType: "1Y", status: "PENDING", total: 6}
	values := append(row.values(now), int64(2), "Asha", "asha@example.com", "9876543210")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.status = $1")).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows(append(membershipRowColumns, "u.id", "u.name", "u.email", "u.phone")).AddRow(values...))

	status := models.StatusPending
	list, err := repo.List(testContext(), &status, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha", list[0].User.Name)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestMembershipList_ExpiredIncludesLapsedActive(t *testing.T) {
	repo, mock := newTestMembershipRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("(m.status = $1 OR (m.status = $2 AND m.end_date < $3))")).
		WithArgs("EXPIRED", "ACTIVE", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(append(membershipRowColumns, "u.id", "u.name", "u.email", "u.phone")))

	status := models.StatusExpired
	list, err := repo.List(testContext(), &status, now)
	require.NoError(t, err)
	assert.Empty(t, list)
}
