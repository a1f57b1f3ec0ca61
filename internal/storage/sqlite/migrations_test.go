package sqlite

import (
	"context"
	"testing"

	"github.com/GustavoCaso/carfinder/internal/testutil"
)

func TestMigrations(t *testing.T) {
	stor := setupTestStorage(t)

	if _, err := stor.Keys(context.Background()); err != nil {
		t.Fatalf("Failed to query kv table after migrations: %v", err)
	}

	version, err := stor.SchemaVersion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("Expected schema version %d, got %d", len(migrations), version)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	stor := setupTestStorage(t)

	if err := stor.ApplyMigrations(context.Background(), testutil.TestLogger(t)); err != nil {
		t.Fatalf("Second ApplyMigrations failed: %v", err)
	}

	var count int
	row := stor.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM schema_migrations")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("Expected %d recorded migrations, got %d", len(migrations), count)
	}
}

func TestMigrationsResumeFromRecordedVersion(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	// Pretend only the first migration ran: drop the later column by
	// rebuilding the table and forget the second record.
	for _, stmt := range []string{
		"DROP TABLE kv",
		migrations[0].statement,
		"DELETE FROM schema_migrations WHERE version > 1",
	} {
		if _, err := stor.db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}

	if err := stor.ApplyMigrations(ctx, testutil.TestLogger(t)); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	if err := stor.Write(ctx, "wishlist", []byte("[]")); err != nil {
		t.Fatalf("Write after resumed migration failed: %v", err)
	}
}
