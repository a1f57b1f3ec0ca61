// Package sqlite implements storage.Cache on a single sqlite table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/GustavoCaso/carfinder/internal/config"
)

// Storage keeps key-value documents in a sqlite table.
type Storage struct {
	db *sql.DB
}

// New opens the database at dbConfig.Source and applies the pool and PRAGMA
// settings. Call ApplyMigrations before reading or writing.
func New(dbConfig config.DBConfig) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbConfig.Source)
	if err != nil {
		return nil, err
	}

	if dbConfig.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	}

	if err = applyPragmas(context.Background(), db, dbConfig); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

type pragma struct {
	name  string
	value string
}

func applyPragmas(ctx context.Context, db *sql.DB, dbConfig config.DBConfig) error {
	pragmas := []pragma{
		{name: "journal_mode", value: dbConfig.JournalMode},
		{name: "synchronous", value: dbConfig.Synchronous},
	}
	if dbConfig.BusyTimeout > 0 {
		pragmas = append(pragmas, pragma{name: "busy_timeout", value: strconv.Itoa(dbConfig.BusyTimeout)})
	}

	for _, p := range pragmas {
		if p.value == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.name, err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
