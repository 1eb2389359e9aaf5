package migration

import (
	"context"

	"salesloader/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the catalog tables the SQL table store relies on.
// Every statement is idempotent, so it runs on each connect.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all catalog migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createColumnFamiliesTable(ctx, db); err != nil {
		return errors.Wrap(errors.Storage("migrate", err), "failed to create widecolumn_families table")
	}

	if err := r.createSchemaVersionTable(ctx, db); err != nil {
		return errors.Wrap(errors.Storage("migrate", err), "failed to create widecolumn_schema table")
	}

	if err := r.recordVersion(ctx, db); err != nil {
		return errors.Wrap(errors.Storage("migrate", err), "failed to record catalog version")
	}

	return nil
}

// widecolumn_families lists, per table, the column families it was created
// with; a table exists iff it has rows here
func (r *MigrationRunner) createColumnFamiliesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS widecolumn_families (
			table_name VARCHAR(63) NOT NULL,
			family VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (table_name, family)
		)
	`)
	return err
}

func (r *MigrationRunner) createSchemaVersionTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS widecolumn_schema (
			version VARCHAR(32) PRIMARY KEY
		)
	`)
	return err
}

func (r *MigrationRunner) recordVersion(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, db.Rebind(`
		INSERT INTO widecolumn_schema (version) VALUES (?)
		ON CONFLICT (version) DO NOTHING
	`), r.version)
	return err
}

// AppliedVersions returns the catalog versions recorded in db
func AppliedVersions(ctx context.Context, db *sqlx.DB) ([]string, error) {
	var versions []string
	if err := db.SelectContext(ctx, &versions, `SELECT version FROM widecolumn_schema ORDER BY version`); err != nil {
		return nil, errors.Storage("read catalog version", err)
	}
	return versions, nil
}
