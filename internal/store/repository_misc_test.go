package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterNext(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCounterRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (year) DO UPDATE")).
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(7))

	n, err := repo.Next(testContext(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestCounterNext_Error(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCounterRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("INSERT INTO membership_counters").WillReturnError(errors.New("down"))

	_, err := repo.Next(testContext(), 2026)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestPaymentCreate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPaymentRepository(newDBFromSQL(db), logger.Nop())

	now := time.Now()
	ref := "txn-1"
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(int64(1), int64(2), int64(9999), "upi", ref, nil, models.PaymentAttemptSuccess).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, now))

	p, err := repo.Create(testContext(), models.Payment{
		UserID: 1, MembershipID: 2, Amount: 9999, Method: "upi",
		GatewayReference: &ref, Status: models.PaymentAttemptSuccess,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestRejectionCreate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRejectionRepository(newDBFromSQL(db), logger.Nop())

	now := time.Now()
	mock.ExpectExec("INSERT INTO membership_rejections").
		WithArgs(int64(3), int64(4), "1Y", "payment not received", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(testContext(), models.Rejection{
		MembershipID: 3, UserID: 4, PlanType: models.PlanOneYear,
		Reason: "payment not received", RejectedAt: now,
	})
	require.NoError(t, err)
}

func TestChatRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewChatRepository(newDBFromSQL(db), logger.Nop())
	ctx := testContext()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO chat_messages").
		WithArgs(int64(1), models.ChatRoleUser, "hello").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))

	saved, err := repo.Save(ctx, models.ChatMessage{UserID: 1, Role: models.ChatRoleUser, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), saved.ID)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC, id ASC")).
		WithArgs(int64(1), 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "role", "content", "created_at"}).
			AddRow(10, 1, "user", "hello", now).
			AddRow(11, 1, "assistant", "hi there", now))

	history, err := repo.History(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChatRoleAssistant, history[1].Role)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(1), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "role", "content", "created_at"}).
			AddRow(58, 1, "user", "newer", now).
			AddRow(59, 1, "assistant", "newest", now))

	recent, err := repo.Recent(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "newest", recent[1].Content)

	mock.ExpectExec("DELETE FROM chat_messages").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.Clear(ctx, 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrochureRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBrochureRepository(newDBFromSQL(db), logger.Nop())
	ctx := testContext()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO brochures").
		WithArgs("Winter treks", "https://cdn/winter.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	b, err := repo.Create(ctx, models.Brochure{Title: "Winter treks", URL: "https://cdn/winter.pdf"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	mock.ExpectQuery("FROM brochures").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "url", "created_at"}).AddRow(1, "Winter treks", "https://cdn/winter.pdf", now))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mock.ExpectExec("DELETE FROM brochures").WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 2), ErrBrochureNotFound)
}

func TestStatsDashboard(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStatsRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'ACTIVE' AND (end_date IS NULL OR end_date >= NOW())")).
		WillReturnRows(sqlmock.NewRows([]string{"users", "memberships", "active", "pending", "destinations"}).
			AddRow(12, 9, 4, 3, 8))

	stats, err := repo.Dashboard(testContext())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalUsers: 12, TotalMemberships: 9, ActiveMemberships: 4, PendingRequests: 3, TotalDestinations: 8,
	}, stats)
}
