package app

import (
	"context"
	"fmt"
	"io"

	"salesloader/domain/record"
	"salesloader/internal"
	"salesloader/internal/errors"
	"salesloader/ports"
)

// TableProvisioner makes sure the destination table exists
type TableProvisioner struct {
	conn   ports.Connection
	out    io.Writer
	logger *internal.Logger
}

// NewTableProvisioner creates a new table provisioner
func NewTableProvisioner(conn ports.Connection, out io.Writer, logger *internal.Logger) *TableProvisioner {
	return &TableProvisioner{conn: conn, out: out, logger: logger}
}

// CreateTable creates name with exactly the given groups unless a table of
// that name exists already, in which case nothing changes. The existence
// check and the create are two separate calls.
func (p *TableProvisioner) CreateTable(ctx context.Context, name string, groups ...record.ColumnGroup) (err error) {
	admin, err := p.conn.Admin(ctx)
	if err != nil {
		return errors.Wrap(errors.Storage("admin", err), "failed to get admin handle")
	}
	defer func() {
		if cerr := admin.Close(); cerr != nil && err == nil {
			err = errors.Storage("close admin", cerr)
		}
	}()

	exists, err := admin.TableExists(ctx, name)
	if err != nil {
		return errors.Wrapf(err, "failed to check table %s", name)
	}
	if exists {
		fmt.Fprintf(p.out, "Table already exists: %s\n", name)
		return nil
	}

	if err := admin.CreateTable(ctx, name, record.GroupNames(groups)); err != nil {
		return errors.Wrapf(err, "failed to create table %s", name)
	}
	p.logger.Info("[TableProvisioner] created %s with families %v", name, record.GroupNames(groups))
	fmt.Fprintf(p.out, "Table created: %s\n", name)
	return nil
}
