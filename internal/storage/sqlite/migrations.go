package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCaso/carfinder/internal/logger"
)

type migration struct {
	name      string
	statement string
}

// migrations run in order; their 1-based position is the schema version.
// Append only.
var migrations = []migration{
	{
		name: "Create kv table",
		statement: `
			CREATE TABLE IF NOT EXISTS kv
			(
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
			) STRICT;`,
	},
	{
		name:      "Add updated_at to kv",
		statement: `ALTER TABLE kv ADD COLUMN updated_at INTEGER NOT NULL DEFAULT 0;`,
	},
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`

// SchemaVersion reports the highest migration applied to the database.
func (s *Storage) SchemaVersion(ctx context.Context) (int, error) {
	version := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// ApplyMigrations brings the schema up to date. Each migration runs in its
// own transaction together with its schema_migrations record.
func (s *Storage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	if _, err := s.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		m := migrations[i]

		logger.Info("Applying migration", "version", version, "name", m.name)

		if err = s.applyMigration(ctx, version, m); err != nil {
			return err
		}

		logger.Info("Migration applied successfully", "version", version)
	}

	return nil
}

func (s *Storage) applyMigration(ctx context.Context, version int, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", version, err)
	}

	if err = runMigration(ctx, tx, version, m); err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return rErr
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", version, err)
	}
	return nil
}

func runMigration(ctx context.Context, tx *sql.Tx, version int, m migration) error {
	if _, err := tx.ExecContext(ctx, m.statement); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", version, m.name, err)
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		version, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}
	return nil
}
