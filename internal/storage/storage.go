package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys used by the application. They match the values already stored by
// existing installations and must not change.
const (
	KeyDarkMode = "darkMode"
	KeyWishlist = "wishlist"
)

type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "record not found"
	}
	return fmt.Sprintf("record %q not found", e.Key)
}

// Cache is a durable string-keyed store for small JSON documents.
//
// Read returns a *NotFoundError when key holds no value. Write replaces the
// whole value stored under key; a Read issued after a successful Write of the
// same key observes that value.
type Cache interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error

	// Resource managment
	Close() error
}

// ReadJSON decodes the value stored under key into v.
func ReadJSON(ctx context.Context, c Cache, key string, v any) error {
	data, err := c.Read(ctx, key)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed value for key %q: %w", key, err)
	}

	return nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, c Cache, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	return c.Write(ctx, key, data)
}
