// Package sqlstore keeps wide-column tables in a SQL database: one SQL table
// per wide table holding (row_key, family, qualifier, value) cells, plus the
// widecolumn_families catalog.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"salesloader/domain/core"
	"salesloader/domain/record"
	"salesloader/internal/errors"
	"salesloader/internal/migration"
	"salesloader/ports"
)

// Connection is a sqlx-backed table store session
type Connection struct {
	db      *sqlx.DB
	dialect dialect
}

var _ ports.Connection = (*Connection)(nil)

// Open connects to url with driver ("postgres" or "sqlite") and bootstraps
// the catalog
func Open(ctx context.Context, driver, url string) (*Connection, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	db, err := sqlx.ConnectContext(ctx, d.driver, url)
	if err != nil {
		return nil, errors.Storage("connect", err)
	}
	if d.driver == "sqlite" {
		// in-memory sqlite databases are per connection
		db.SetMaxOpenConns(1)
	}

	conn, err := New(ctx, db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return conn, nil
}

// New wraps an existing connection pool
func New(ctx context.Context, db *sqlx.DB, driver string) (*Connection, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return nil, err
	}
	return &Connection{db: db, dialect: d}, nil
}

func (c *Connection) Admin(ctx context.Context) (ports.Admin, error) {
	return &admin{conn: c}, nil
}

// Table returns a handle without checking that the table exists
func (c *Connection) Table(ctx context.Context, name string) (ports.Table, error) {
	quoted, err := quoteTable(name)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return &table{conn: c, name: name, quoted: quoted}, nil
}

func (c *Connection) Close() error {
	if err := c.db.Close(); err != nil {
		return errors.Storage("close", err)
	}
	return nil
}

func (c *Connection) families(ctx context.Context, name string) ([]string, error) {
	var families []string
	err := c.db.SelectContext(ctx, &families, c.db.Rebind(
		`SELECT family FROM widecolumn_families WHERE table_name = ? ORDER BY position`), name)
	if err != nil {
		return nil, errors.Storage("read catalog", err)
	}
	return families, nil
}

type admin struct {
	conn *Connection
}

func (a *admin) TableExists(ctx context.Context, name string) (bool, error) {
	families, err := a.conn.families(ctx, name)
	if err != nil {
		return false, err
	}
	return len(families) > 0, nil
}

// CreateTable registers the families and creates the cell table in one
// transaction
func (a *admin) CreateTable(ctx context.Context, name string, families []string) error {
	quoted, err := quoteTable(name)
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}
	if len(families) == 0 {
		return errors.WithCode(errors.CodeInvalidInput, core.ErrNoColumnFamilies)
	}

	tx, err := a.conn.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Storage("create table", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(
		`SELECT COUNT(*) FROM widecolumn_families WHERE table_name = ?`), name); err != nil {
		return errors.Storage("create table", err)
	}
	if count > 0 {
		return errors.WithCode(errors.CodeStorage, fmt.Errorf("%w: %s", core.ErrTableExists, name))
	}

	if _, err := tx.ExecContext(ctx, a.conn.dialect.createTableSQL(quoted)); err != nil {
		return errors.Storage("create table", err)
	}
	for i, family := range families {
		if family == "" {
			return errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("column family %d of %s is empty", i, name))
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO widecolumn_families (table_name, family, position) VALUES (?, ?, ?)`), name, family, i); err != nil {
			return errors.Storage("create table", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Storage("create table", err)
	}
	return nil
}

func (a *admin) Close() error { return nil }

type table struct {
	conn     *Connection
	name     string
	quoted   string
	families map[string]bool
}

func (t *table) Name() string { return t.name }

func (t *table) loadFamilies(ctx context.Context) error {
	if t.families != nil {
		return nil
	}
	families, err := t.conn.families(ctx, t.name)
	if err != nil {
		return err
	}
	if len(families) == 0 {
		return core.NewTableNotFoundError(t.name)
	}
	t.families = make(map[string]bool, len(families))
	for _, f := range families {
		t.families[f] = true
	}
	return nil
}

// Put upserts every field of rec in one transaction
func (t *table) Put(ctx context.Context, rec record.Record) error {
	if err := t.loadFamilies(ctx); err != nil {
		return err
	}
	for _, f := range rec.Fields {
		if !t.families[f.Group.String()] {
			return core.NewFamilyNotFoundError(t.name, f.Group.String())
		}
	}

	tx, err := t.conn.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Storage("put", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(t.conn.dialect.upsertSQL(t.quoted)))
	if err != nil {
		return errors.Storage("put", err)
	}
	defer stmt.Close()

	for _, f := range rec.Fields {
		value := f.Value
		if value == nil {
			value = []byte{}
		}
		if _, err := stmt.ExecContext(ctx, rec.Key, f.Group.String(), f.Qualifier, value); err != nil {
			return errors.Storage("put", fmt.Errorf("row %s %s:%s: %w", rec.Key, f.Group, f.Qualifier, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Storage("put", err)
	}
	return nil
}

func (t *table) Scan(ctx context.Context) (ports.ResultScanner, error) {
	if err := t.loadFamilies(ctx); err != nil {
		return nil, err
	}
	rows, err := t.conn.db.QueryxContext(ctx, t.conn.dialect.scanSQL(t.quoted))
	if err != nil {
		return nil, errors.Storage("scan", err)
	}
	return &scanner{rows: rows}, nil
}

func (t *table) Close() error { return nil }

type cellRow struct {
	RowKey    string `db:"row_key"`
	Family    string `db:"family"`
	Qualifier string `db:"qualifier"`
	Value     []byte `db:"value"`
}

func (c cellRow) stored() record.StoredCell {
	return record.StoredCell{Row: c.RowKey, Family: c.Family, Qualifier: c.Qualifier, Value: c.Value}
}

// scanner groups consecutive SQL rows into one result per row key
type scanner struct {
	rows    *sqlx.Rows
	pending *record.StoredCell
	current record.Result
	err     error
	done    bool
}

func (s *scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	var result record.Result
	if s.pending != nil {
		result = record.Result{Row: s.pending.Row, Cells: []record.StoredCell{*s.pending}}
		s.pending = nil
	}

	for s.rows.Next() {
		var row cellRow
		if err := s.rows.StructScan(&row); err != nil {
			s.err = errors.Storage("scan", err)
			return false
		}
		cell := row.stored()
		if len(result.Cells) > 0 && cell.Row != result.Row {
			s.pending = &cell
			s.current = result
			return true
		}
		result.Row = cell.Row
		result.Cells = append(result.Cells, cell)
	}
	if err := s.rows.Err(); err != nil && err != sql.ErrNoRows {
		s.err = errors.Storage("scan", err)
		return false
	}

	s.done = true
	if len(result.Cells) == 0 {
		return false
	}
	s.current = result
	return true
}

func (s *scanner) Result() record.Result { return s.current }

func (s *scanner) Err() error { return s.err }

func (s *scanner) Close() error {
	return s.rows.Close()
}
