// Package main applies or reverts the embedded database migrations.
//
// Usage:
//
//	migrate up    apply all pending migrations
//	migrate down  revert the most recent migration
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lib/pq"

	"github.com/penshort/userapi/internal/config"
	"github.com/penshort/userapi/internal/migrate"
)

const migrateTimeout = 2 * time.Minute

var errUsage = errors.New("usage: migrate up|down")

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the migrate command and returns the process exit code.
func execute(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := config.LoadDotenv(".env"); err != nil {
		logger.Error("failed to load .env", "error", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	connector, err := pq.NewConnector(cfg.DatabaseURL)
	if err != nil {
		logger.Error("invalid DATABASE_URL", "error", err)
		return 1
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := run(ctx, db, args, logger); err != nil {
		logger.Error("migration failed", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, db *sql.DB, args []string, logger *slog.Logger) error {
	if len(args) != 1 {
		return errUsage
	}

	switch args[0] {
	case "up":
		applied, err := migrate.Up(ctx, db)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", applied)
	case "down":
		reverted, err := migrate.Down(ctx, db)
		if err != nil {
			return err
		}
		if !reverted {
			logger.Info("nothing to revert")
			return nil
		}
		logger.Info("reverted latest migration")
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}

	return nil
}
