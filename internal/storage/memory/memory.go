// Package memory is an in-process cache. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/carfinder/internal/storage"
)

type Storage struct {
	mu     sync.Mutex
	values map[string][]byte

	// WriteErr, when set, is returned by every Write and nothing is stored.
	WriteErr error
	writes   int
}

var _ storage.Cache = (*Storage)(nil)

func New() *Storage {
	return &Storage{values: map[string][]byte{}}
}

func (s *Storage) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return nil, &storage.NotFoundError{Key: key}
	}
	return slices.Clone(value), nil
}

func (s *Storage) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}

	s.values[key] = slices.Clone(value)
	return nil
}

// Writes counts Write calls, failed ones included.
func (s *Storage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writes
}

func (s *Storage) Close() error {
	return nil
}
