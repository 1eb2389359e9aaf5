package config

import (
	"path/filepath"
	"testing"

	"salesloader/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "DATABASE_URL", "LEVELDB_PATH", "INPUT_DIR", "INPUT_FILES", "TABLE_NAME", "LOG_LEVEL", "XLSX_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverLevelDB, cfg.Store.Driver)
	assert.Equal(t, filepath.Join("data", "salesdb"), cfg.Store.LevelDBPath)
	assert.Equal(t, DefaultInputFiles, cfg.Input.Files)
	assert.Equal(t, "real_estate_sales", cfg.Load.TableName)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("data", "refined_2020_manhattan.xlsx"), cfg.Input.Paths()[0])
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/sales?sslmode=disable")
	t.Setenv("INPUT_DIR", "/srv/exports")
	t.Setenv("INPUT_FILES", " a.xlsx, ,b.xlsx ")
	t.Setenv("TABLE_NAME", "nyc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, cfg.Input.Files)
	assert.Equal(t, []string{"/srv/exports/a.xlsx", "/srv/exports/b.xlsx"}, cfg.Input.Paths())
	assert.Equal(t, "nyc", cfg.Load.TableName)
}

func TestLoadRequiresDatabaseURLForSQLDrivers(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "hbase")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STORE_DRIVER "hbase"`)
}

func TestDefaultInputFilesNotAliased(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Input.Files[0] = "changed.xlsx"

	assert.Equal(t, "refined_2020_manhattan.xlsx", DefaultInputFiles[0])
}
