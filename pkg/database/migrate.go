package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

const migrationSuffix = ".up.sql"

// RunMigrations applies every *.up.sql file at the root of migrations in
// lexical order, recording each in schema_migrations so it runs once.
// Transient connection errors are retried with backoff; SQL errors are
// returned immediately.
func RunMigrations(ctx context.Context, db TxDBTX, migrations fs.FS, logger *slog.Logger) error {
	err := runMigrationsOnce(ctx, db, migrations, logger)
	for attempt := 0; err != nil && IsConnectionError(err) && attempt < defaultRetryAttempts-1; attempt++ {
		wait := retryBackoff(attempt)
		logger.Warn("migration failed due to connection error, retrying",
			slog.Int("attempt", attempt+2),
			slog.Int("max_attempts", defaultRetryAttempts),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)
		if werr := sleepCtx(ctx, wait); werr != nil {
			return fmt.Errorf("run migrations: context canceled during retry: %w", werr)
		}
		err = runMigrationsOnce(ctx, db, migrations, logger)
	}
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// pendingMigrations lists the migration file names in apply order.
func pendingMigrations(migrations fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), migrationSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func runMigrationsOnce(ctx context.Context, db TxDBTX, migrations fs.FS, logger *slog.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	names, err := pendingMigrations(migrations)
	if err != nil {
		return err
	}

	for _, name := range names {
		var exists bool
		err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if exists {
			logger.Debug("migration already applied, skipping", slog.String("version", name))
			continue
		}

		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		// Statement and version row commit together.
		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx for migration %s: %w", name, err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("execute migration %s: %w", name, err)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", name, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}

		logger.Info("migration applied", slog.String("version", name))
	}

	return nil
}
