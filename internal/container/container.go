package container

import (
	"context"
	"fmt"
	"io"

	"salesloader/adapters/excel"
	"salesloader/adapters/widecolumn/leveldbstore"
	"salesloader/adapters/widecolumn/sqlstore"
	"salesloader/app"
	"salesloader/internal"
	"salesloader/internal/config"
	"salesloader/internal/errors"
	"salesloader/ports"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Container holds the loader's dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	Conn   ports.Connection
	Reader ports.SpreadsheetReader

	// Services
	Headers     *app.HeaderService
	Provisioner *app.TableProvisioner
	Loader      *app.LoaderService
}

// New opens the configured table store and wires the services, writing
// user-facing output to out
func New(ctx context.Context, cfg *config.Config, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level)),
	}

	conn, err := OpenConnection(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	c.Conn = conn
	c.Logger.Info("Connected to %s table store", cfg.Store.Driver)

	c.Reader = excel.NewReader(excel.ExcelConfig{Password: cfg.Input.Password}, c.Logger)
	c.Headers = app.NewHeaderService(c.Reader, c.Logger)
	c.Provisioner = app.NewTableProvisioner(c.Conn, out, c.Logger)
	c.Loader = app.NewLoaderService(c.Conn, c.Reader, cfg.Input.Paths(), out, c.Logger)

	return c, nil
}

// OpenConnection opens the table store selected by cfg.Driver
func OpenConnection(ctx context.Context, cfg config.StoreConfig) (ports.Connection, error) {
	switch cfg.Driver {
	case config.DriverLevelDB:
		return leveldbstore.Open(cfg.LevelDBPath)
	case config.DriverPostgres, config.DriverSQLite:
		return sqlstore.Open(ctx, cfg.Driver, cfg.DatabaseURL)
	}
	return nil, errors.ConfigInvalid("unknown store driver " + cfg.Driver)
}

// Shutdown releases the table store connection
func (c *Container) Shutdown() error {
	if c.Conn == nil {
		return nil
	}
	err := c.Conn.Close()
	c.Conn = nil
	return err
}
