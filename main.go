package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"salesloader/internal/config"
	"salesloader/internal/container"
	"salesloader/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := run(); err != nil {
		log.Printf("Load failed [%s]: %v", errors.GetCode(err), err)
		os.Exit(1)
	}
}

// run loads the configured yearly exports into the configured table.
// Everything opened here is closed before it returns.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	appContainer, err := container.New(ctx, appConfig, os.Stdout)
	if err != nil {
		return errors.Wrap(err, "failed to create application container")
	}
	defer func() {
		if err := appContainer.Shutdown(); err != nil {
			log.Printf("Failed to close table store: %v", err)
		}
	}()

	report, err := appContainer.Loader.Create(ctx, appConfig.Load.TableName)
	if err != nil {
		return err
	}

	appContainer.Logger.Info("Run %s finished: %d files, %d records, %d rows scanned",
		report.RunID, len(report.Files), report.RecordsWritten(), report.ScannedRows)
	return nil
}
