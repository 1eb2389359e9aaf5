package migration

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	runner := NewRunner()

	require.NoError(t, runner.Run(ctx, db))
	require.NoError(t, runner.Run(ctx, db))

	versions, err := AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{runner.Version()}, versions)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM widecolumn_families`))
	assert.Zero(t, count)
}

func TestRunnerImplementsMigrator(t *testing.T) {
	var m Migrator = NewRunner()
	assert.Equal(t, "1.0.0", m.Version())
}
