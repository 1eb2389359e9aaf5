// Package leveldbstore is an embedded wide-column table store on goleveldb.
// Tables, column families and cells share one keyspace.
package leveldbstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"salesloader/domain/core"
	"salesloader/domain/record"
	"salesloader/internal/errors"
	"salesloader/ports"
)

// Connection owns the leveldb handle
type Connection struct {
	db *leveldb.DB
	mu *sync.Mutex
}

var _ ports.Connection = (*Connection)(nil)

// Open opens (creating if needed) a store in dir
func Open(dir string) (*Connection, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Storage("open", err)
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{
		Filter:      filter.NewBloomFilter(10), // 10 bits/key
		WriteBuffer: 1 << 24,                   // 16MiB
	})
	if err != nil {
		return nil, errors.Storage("open", fmt.Errorf("%s: %w", dir, err))
	}
	return &Connection{db: db, mu: &sync.Mutex{}}, nil
}

// OpenMemory opens a store that lives only in memory
func OpenMemory() (*Connection, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Storage("open", err)
	}
	return &Connection{db: db, mu: &sync.Mutex{}}, nil
}

func (c *Connection) Admin(ctx context.Context) (ports.Admin, error) {
	return &admin{conn: c}, nil
}

// Table returns a handle without checking that the table exists; puts and
// scans against a missing table fail with core.ErrTableNotFound.
func (c *Connection) Table(ctx context.Context, name string) (ports.Table, error) {
	if err := validName(name); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("%w: %q", err, name))
	}
	return &table{conn: c, name: name}, nil
}

func (c *Connection) Close() error {
	if err := c.db.Close(); err != nil {
		return errors.Storage("close", err)
	}
	return nil
}

func (c *Connection) families(name string) ([]string, error) {
	val, err := c.db.Get(tableKey(name), nil)
	if err == leveldb.ErrNotFound {
		return nil, core.NewTableNotFoundError(name)
	}
	if err != nil {
		return nil, errors.Storage("read catalog", err)
	}
	return decodeFamilies(val), nil
}

type admin struct {
	conn *Connection
}

func (a *admin) TableExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := a.conn.db.Has(tableKey(name), nil)
	if err != nil {
		return false, errors.Storage("table exists", err)
	}
	return ok, nil
}

func (a *admin) CreateTable(ctx context.Context, name string, families []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("%w: %q", err, name))
	}
	if len(families) == 0 {
		return errors.WithCode(errors.CodeInvalidInput, core.ErrNoColumnFamilies)
	}
	for _, f := range families {
		if err := validName(f); err != nil {
			return errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("column family %q: %w", f, err))
		}
	}

	a.conn.mu.Lock()
	defer a.conn.mu.Unlock()

	exists, err := a.conn.db.Has(tableKey(name), nil)
	if err != nil {
		return errors.Storage("create table", err)
	}
	if exists {
		return errors.WithCode(errors.CodeStorage, fmt.Errorf("%w: %s", core.ErrTableExists, name))
	}
	if err := a.conn.db.Put(tableKey(name), encodeFamilies(families), &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Storage("create table", err)
	}
	return nil
}

func (a *admin) Close() error { return nil }

type table struct {
	conn     *Connection
	name     string
	families map[string]bool
}

func (t *table) Name() string { return t.name }

func (t *table) loadFamilies() error {
	if t.families != nil {
		return nil
	}
	families, err := t.conn.families(t.name)
	if err != nil {
		return err
	}
	t.families = make(map[string]bool, len(families))
	for _, f := range families {
		t.families[f] = true
	}
	return nil
}

// Put writes all fields of rec in one batch
func (t *table) Put(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.loadFamilies(); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, f := range rec.Fields {
		if !t.families[f.Group.String()] {
			return core.NewFamilyNotFoundError(t.name, f.Group.String())
		}
		batch.Put(cellKey(t.name, rec.Key, f.Group.String(), f.Qualifier), f.Value)
	}
	if err := t.conn.db.Write(batch, nil); err != nil {
		return errors.Storage("put", err)
	}
	return nil
}

func (t *table) Scan(ctx context.Context) (ports.ResultScanner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.loadFamilies(); err != nil {
		return nil, err
	}
	iter := t.conn.db.NewIterator(util.BytesPrefix(tableCellPrefix(t.name)), nil)
	return &scanner{ctx: ctx, table: t.name, iter: iter}, nil
}

func (t *table) Close() error { return nil }
