package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NilDB(t *testing.T) {
	n, err := Migrate(context.Background(), nil)

	require.ErrorIs(t, err, ErrNilDB)
	assert.Zero(t, n)
}

func TestMigrate_DatabaseFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: the first statement goose issues fails
	n, err := Migrate(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
	assert.Zero(t, n)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "*.sql")
	require.NoError(t, err)

	assert.Equal(t, []string{"00001_init.sql", "00002_seed_destinations.sql", "00003_payments_keep_history.sql"}, files)
}

func TestPaymentsSurviveMembershipDeletion(t *testing.T) {
	raw, err := fs.ReadFile(embedMigrations, "00003_payments_keep_history.sql")
	require.NoError(t, err)

	up, down, ok := strings.Cut(string(raw), "-- +goose Down")
	require.True(t, ok)
	assert.Contains(t, up, "REFERENCES memberships (id) ON DELETE SET NULL")
	assert.Contains(t, up, "membership_id DROP NOT NULL")
	assert.NotContains(t, up, "CASCADE")
	assert.Contains(t, down, "ON DELETE CASCADE")
}
