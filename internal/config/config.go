package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"salesloader/internal/errors"
)

// Store drivers understood by the container
const (
	DriverLevelDB  = "leveldb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultInputFiles are the three yearly Manhattan exports, oldest first.
// The first entry is the header reference file.
var DefaultInputFiles = []string{
	"refined_2020_manhattan.xlsx",
	"refined_2021_manhattan.xlsx",
	"refined_2022_manhattan.xlsx",
}

// Config represents the complete loader configuration
type Config struct {
	Store   StoreConfig
	Input   InputConfig
	Load    LoadConfig
	Logging LoggingConfig
}

// StoreConfig selects and addresses the wide-column table store
type StoreConfig struct {
	Driver      string
	DatabaseURL string
	LevelDBPath string
}

// InputConfig holds spreadsheet locations
type InputConfig struct {
	Dir      string
	Files    []string
	Password string
}

// LoadConfig holds load settings
type LoadConfig struct {
	TableName string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Paths returns the absolute-or-relative paths of the input files in load order
func (c InputConfig) Paths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		paths = append(paths, filepath.Join(c.Dir, f))
	}
	return paths
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Store:   loadStoreConfig(),
		Input:   loadInputConfig(),
		Load:    loadLoadConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Driver:      strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverLevelDB)),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		LevelDBPath: getEnvOrDefault("LEVELDB_PATH", filepath.Join("data", "salesdb")),
	}
}

func loadInputConfig() InputConfig {
	return InputConfig{
		Dir:      getEnvOrDefault("INPUT_DIR", "data"),
		Files:    getEnvListOrDefault("INPUT_FILES", DefaultInputFiles),
		Password: os.Getenv("XLSX_PASSWORD"),
	}
}

func loadLoadConfig() LoadConfig {
	return LoadConfig{
		TableName: getEnvOrDefault("TABLE_NAME", "real_estate_sales"),
	}
}

func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case DriverLevelDB:
		if config.Store.LevelDBPath == "" {
			return errors.ConfigInvalid("LEVELDB_PATH is required for the leveldb driver")
		}
	case DriverPostgres, DriverSQLite:
		if config.Store.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the " + config.Store.Driver + " driver")
		}
	default:
		return errors.ConfigInvalid("unknown STORE_DRIVER " + strconv.Quote(config.Store.Driver))
	}
	if len(config.Input.Files) == 0 {
		return errors.ConfigInvalid("at least one input file is required")
	}
	if config.Load.TableName == "" {
		return errors.ConfigInvalid("table name is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
