package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/storage"
	"github.com/GustavoCaso/carfinder/internal/testutil"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	// Using a tempDir ensure it gets clean after each test
	return openTestStorage(t, filepath.Join(t.TempDir(), "carfinder.db"))
}

func openTestStorage(t *testing.T, path string) *Storage {
	t.Helper()

	stor, err := New(config.DBConfig{Source: path, BusyTimeout: 1000})
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}

	err = stor.ApplyMigrations(context.Background(), testutil.TestLogger(t))
	if err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err = stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}

func TestReadMissingKey(t *testing.T) {
	stor := setupTestStorage(t)

	_, err := stor.Read(context.Background(), storage.KeyWishlist)

	var notFound *storage.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if notFound.Key != storage.KeyWishlist {
		t.Errorf("NotFoundError.Key = %q, want %q", notFound.Key, storage.KeyWishlist)
	}
}

func TestWriteThenRead(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	if err := stor.Write(ctx, storage.KeyDarkMode, []byte("true")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := stor.Read(ctx, storage.KeyDarkMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "true" {
		t.Errorf("Read = %q, want %q", got, "true")
	}

	// Overwrite replaces the previous value
	if err = stor.Write(ctx, storage.KeyDarkMode, []byte("false")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err = stor.Read(ctx, storage.KeyDarkMode)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "false" {
		t.Errorf("Read = %q, want %q", got, "false")
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carfinder.db")
	ctx := context.Background()

	first, err := New(config.DBConfig{Source: path})
	if err != nil {
		t.Fatal(err)
	}
	if err = first.ApplyMigrations(ctx, testutil.TestLogger(t)); err != nil {
		t.Fatal(err)
	}

	listings := testutil.Listings(t)[:3]
	if err = storage.WriteJSON(ctx, first, storage.KeyWishlist, listings); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if err = first.Close(); err != nil {
		t.Fatal(err)
	}

	second := openTestStorage(t, path)

	var got []any
	if err = storage.ReadJSON(ctx, second, storage.KeyWishlist, &got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 listings after reopen, got %d", len(got))
	}
}

func TestKeys(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{storage.KeyWishlist, storage.KeyDarkMode} {
		if err := stor.Write(ctx, key, []byte("null")); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := stor.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}

	want := []string{storage.KeyDarkMode, storage.KeyWishlist}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
