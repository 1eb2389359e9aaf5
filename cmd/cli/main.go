package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"salesloader/app"
	"salesloader/domain/record"
	"salesloader/internal/config"
	"salesloader/internal/container"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "salesloader",
		Short: "Load yearly real-estate sales spreadsheets into a wide-column table",
		Long: `salesloader reads the yearly Manhattan sales exports, writes every row into a
table with SALES and ETC column families, and prints the table back out.

Store and input locations come from the environment (or a .env file):
- STORE_DRIVER=leveldb|postgres|sqlite (default: leveldb)
- LEVELDB_PATH (default: data/salesdb)
- DATABASE_URL (postgres and sqlite)
- INPUT_DIR (default: data), INPUT_FILES (comma separated)
- TABLE_NAME (default: real_estate_sales)
- LOG_LEVEL=ERROR|WARN|INFO|DEBUG|TRACE`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newLoadCmd(),
		newProvisionCmd(),
		newScanCmd(),
		newHeaderCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// withContainer loads config, opens the store and always closes it again
func withContainer(cmd *cobra.Command, fn func(c *container.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c, err := container.New(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Shutdown(); err != nil {
			c.Logger.Error("Failed to close table store: %v", err)
		}
	}()
	return fn(c)
}

func tableArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Load.TableName
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [table]",
		Short: "Provision the table, load every input file and print the table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *container.Container) error {
				report, err := c.Loader.Create(cmd.Context(), tableArg(args, c.Config))
				if err != nil {
					return err
				}
				for _, f := range report.Files {
					c.Logger.Info("%s: %d rows, %d records, %d overwritten", f.Path, f.RowsRead, f.RecordsWritten, f.Overwritten)
				}
				return nil
			})
		},
	}
}

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision [table]",
		Short: "Create the table with the SALES and ETC column families if it is missing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *container.Container) error {
				return c.Provisioner.CreateTable(cmd.Context(), tableArg(args, c.Config), record.DefaultGroups()...)
			})
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [table]",
		Short: "Print every cell of the table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *container.Container) error {
				table, err := c.Conn.Table(cmd.Context(), tableArg(args, c.Config))
				if err != nil {
					return err
				}
				defer table.Close()
				_, err = app.ScanTableData(cmd.Context(), table, cmd.OutOrStdout())
				return err
			})
		},
	}
}

func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header [file]",
		Short: "Print the header row used for the load",
		Long:  "Print the header row of the given file, or of the first configured input file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *container.Container) error {
				path := c.Config.Input.Paths()[0]
				if len(args) > 0 {
					path = args[0]
				}
				headers, err := c.Headers.InitHeader(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.FormatHeaders(headers))
				for i, h := range headers {
					fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-6s %s\n", i, record.ClassifyHeader(h), h)
				}
				return nil
			})
		},
	}
}
