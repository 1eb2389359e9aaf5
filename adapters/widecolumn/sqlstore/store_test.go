package sqlstore

import (
	"context"
	"errors"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"salesloader/domain/core"
	"salesloader/domain/record"
	apperrors "salesloader/internal/errors"
	"salesloader/ports"
)

// openStores returns an in-memory sqlite store, plus postgres when
// TEST_DATABASE_URL points at a scratch database
func openStores(t *testing.T) map[string]*Connection {
	t.Helper()
	ctx := context.Background()
	stores := map[string]*Connection{}

	lite, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })
	stores["sqlite"] = lite

	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		pg, err := Open(ctx, "postgres", url)
		require.NoError(t, err)
		_, err = pg.db.ExecContext(ctx, `DROP TABLE IF EXISTS "sales_test"`)
		require.NoError(t, err)
		_, err = pg.db.ExecContext(ctx, `DELETE FROM widecolumn_families WHERE table_name = 'sales_test'`)
		require.NoError(t, err)
		t.Cleanup(func() { pg.Close() })
		stores["postgres"] = pg
	}
	return stores
}

func createTable(t *testing.T, conn *Connection) ports.Table {
	t.Helper()
	ctx := context.Background()
	admin, err := conn.Admin(ctx)
	require.NoError(t, err)
	require.NoError(t, admin.CreateTable(ctx, "sales_test", []string{"SALES", "ETC"}))
	tbl, err := conn.Table(ctx, "sales_test")
	require.NoError(t, err)
	return tbl
}

func scanAll(t *testing.T, tbl ports.Table) []record.Result {
	t.Helper()
	sc, err := tbl.Scan(context.Background())
	require.NoError(t, err)
	defer sc.Close()
	var results []record.Result
	for sc.Next() {
		results = append(results, sc.Result())
	}
	require.NoError(t, sc.Err())
	return results
}

func TestCreateTableIdempotentCheck(t *testing.T) {
	for name, conn := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			admin, err := conn.Admin(ctx)
			require.NoError(t, err)

			exists, err := admin.TableExists(ctx, "sales_test")
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, admin.CreateTable(ctx, "sales_test", []string{"SALES", "ETC"}))
			exists, err = admin.TableExists(ctx, "sales_test")
			require.NoError(t, err)
			assert.True(t, exists)

			err = admin.CreateTable(ctx, "sales_test", []string{"SALES", "ETC"})
			assert.True(t, errors.Is(err, core.ErrTableExists), "got %v", err)
			assert.Equal(t, apperrors.CodeStorage, apperrors.GetCode(err))

			families, err := conn.families(ctx, "sales_test")
			require.NoError(t, err)
			assert.Equal(t, []string{"SALES", "ETC"}, families)
		})
	}
}

func TestPutScan(t *testing.T) {
	for name, conn := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tbl := createTable(t, conn)

			rec := record.Record{Key: "1"}
			rec.Add("SALE PRICE", "100000.0")
			rec.Add("NOTE", "ok")
			require.NoError(t, tbl.Put(ctx, rec))
			require.NoError(t, tbl.Put(ctx, record.Record{Key: "10", Fields: []record.Field{
				{Group: record.GroupEtc, Qualifier: "NOTE", Value: []byte("ten")},
			}}))
			require.NoError(t, tbl.Put(ctx, record.Record{Key: "2", Fields: []record.Field{
				{Group: record.GroupEtc, Qualifier: "NOTE", Value: []byte("two")},
			}}))

			results := scanAll(t, tbl)
			require.Len(t, results, 3)
			assert.Equal(t, "1", results[0].Row)
			assert.Equal(t, "10", results[1].Row)
			assert.Equal(t, "2", results[2].Row)
			assert.Equal(t, []record.StoredCell{
				{Row: "1", Family: "ETC", Qualifier: "NOTE", Value: []byte("ok")},
				{Row: "1", Family: "SALES", Qualifier: "SALE PRICE", Value: []byte("100000.0")},
			}, results[0].Cells)
		})
	}
}

func TestPutOverwritesCell(t *testing.T) {
	for name, conn := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			tbl := createTable(t, conn)

			first := record.Record{Key: "3"}
			first.Add("NOTE", "2020")
			second := record.Record{Key: "3"}
			second.Add("NOTE", "2022")
			require.NoError(t, tbl.Put(ctx, first))
			require.NoError(t, tbl.Put(ctx, second))

			results := scanAll(t, tbl)
			require.Len(t, results, 1)
			require.Len(t, results[0].Cells, 1)
			assert.Equal(t, "2022", string(results[0].Cells[0].Value))
		})
	}
}

func TestPutEmptyValue(t *testing.T) {
	conn := openStores(t)["sqlite"]
	ctx := context.Background()
	tbl := createTable(t, conn)

	rec := record.Record{Key: "1"}
	rec.Add("FORMULA COLUMN", "")
	require.NoError(t, tbl.Put(ctx, rec))

	results := scanAll(t, tbl)
	require.Len(t, results, 1)
	assert.Equal(t, "", string(results[0].Cells[0].Value))
}

func TestPutErrors(t *testing.T) {
	conn := openStores(t)["sqlite"]
	ctx := context.Background()

	missing, err := conn.Table(ctx, "nowhere")
	require.NoError(t, err)
	err = missing.Put(ctx, record.Record{Key: "1", Fields: []record.Field{{Group: record.GroupEtc, Qualifier: "N", Value: []byte("v")}}})
	assert.True(t, errors.Is(err, core.ErrTableNotFound), "got %v", err)

	tbl := createTable(t, conn)
	err = tbl.Put(ctx, record.Record{Key: "1", Fields: []record.Field{{Group: "OTHER", Qualifier: "N", Value: []byte("v")}}})
	assert.True(t, errors.Is(err, core.ErrFamilyNotFound), "got %v", err)
	assert.Empty(t, scanAll(t, tbl))
}

func TestTableNameValidation(t *testing.T) {
	conn := openStores(t)["sqlite"]
	ctx := context.Background()

	for _, name := range []string{"", "1sales", `sales"; DROP TABLE x; --`, "sales-2020"} {
		_, err := conn.Table(ctx, name)
		assert.True(t, errors.Is(err, core.ErrInvalidTableName), "name %q: %v", name, err)
	}

	admin, err := conn.Admin(ctx)
	require.NoError(t, err)
	assert.True(t, errors.Is(admin.CreateTable(ctx, "ok_name", nil), core.ErrNoColumnFamilies))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "hbase", "zk://localhost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}
