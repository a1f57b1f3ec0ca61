// Package file keeps key-value documents in a single JSON file on disk.
//
// The file holds one JSON object mapping each key to its raw stored text, the
// same shape a browser's local storage has. Every write replaces the file
// atomically, so a crash never leaves a half-written document behind.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/GustavoCaso/carfinder/internal/storage"
)

type Storage struct {
	path string
	mu   sync.Mutex
}

var _ storage.Cache = (*Storage)(nil)

func New(path string) *Storage {
	return &Storage{path: path}
}

func (s *Storage) Path() string {
	return s.path
}

// load returns the stored document. A missing file is an empty document.
func (s *Storage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	doc := map[string]string{}
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed state file %s: %w", s.path, err)
	}

	return doc, nil
}

func (s *Storage) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	value, ok := doc[key]
	if !ok {
		return nil, &storage.NotFoundError{Key: key}
	}

	return []byte(value), nil
}

// Write stores value under key. A malformed state file is replaced by a
// document holding only the written key.
func (s *Storage) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return err
		}
		doc = map[string]string{}
	}

	doc[key] = string(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(s.path, bytes.NewReader(data))
}

func (s *Storage) Close() error {
	return nil
}
