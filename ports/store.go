package ports

import (
	"context"

	"salesloader/domain/record"
)

// Connection is a session with a wide-column table store
type Connection interface {
	Admin(ctx context.Context) (Admin, error)
	Table(ctx context.Context, name string) (Table, error)
	Close() error
}

// Admin performs table DDL
type Admin interface {
	TableExists(ctx context.Context, name string) (bool, error)
	// CreateTable creates name with exactly the given column families.
	// It fails with core.ErrTableExists if the table is already there.
	CreateTable(ctx context.Context, name string, families []string) error
	Close() error
}

// Table reads and writes one table. Puts overwrite by (row, family, qualifier).
type Table interface {
	Name() string
	// Put writes every field of rec under rec.Key. A field in a family the
	// table was not created with fails with core.ErrFamilyNotFound.
	Put(ctx context.Context, rec record.Record) error
	// Scan returns every row ordered by row key bytes
	Scan(ctx context.Context) (ResultScanner, error)
	Close() error
}

// ResultScanner streams scan results
type ResultScanner interface {
	Next() bool
	Result() record.Result
	Err() error
	Close() error
}
