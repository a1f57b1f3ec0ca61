package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/GustavoCaso/carfinder/internal/storage"
)

var _ storage.Cache = (*Storage)(nil)

func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &storage.NotFoundError{Key: key}
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

func (s *Storage) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, string(value), time.Now().Unix(),
	)
	return err
}

// Keys lists every stored key in lexical order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
