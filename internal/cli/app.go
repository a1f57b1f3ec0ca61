package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/config"
	importutil "github.com/GustavoCaso/carfinder/internal/import"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/session"
	"github.com/GustavoCaso/carfinder/internal/storage"
	"github.com/GustavoCaso/carfinder/internal/storage/file"
	"github.com/GustavoCaso/carfinder/internal/storage/memory"
	"github.com/GustavoCaso/carfinder/internal/storage/sqlite"
)

// OpenCache opens the storage backend selected by conf. The caller closes it.
func OpenCache(ctx context.Context, conf *config.Config, logger *logger.Logger) (storage.Cache, error) {
	switch conf.Storage {
	case config.StorageSQLite:
		s, err := sqlite.New(conf.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to open database %s: %w", conf.DB.Source, err)
		}

		if err = s.ApplyMigrations(ctx, logger); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}

		keys, err := s.Keys(ctx)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to read stored keys: %w", err)
		}

		logger.Debug("Using sqlite storage", "source", conf.DB.Source, "keys", keys)
		return s, nil
	case config.StorageFile:
		logger.Debug("Using file storage", "path", conf.StateFile)
		return file.New(conf.StateFile), nil
	case config.StorageMemory:
		logger.Debug("Using in-memory storage")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", conf.Storage)
	}
}

// LoadCatalog reads conf.Catalog, or the embedded dataset when it is empty.
// Files ending in .csv are imported by column name; anything else is JSON.
func LoadCatalog(conf *config.Config) (*catalog.Catalog, error) {
	if conf.Catalog == "" {
		return catalog.Default()
	}

	if strings.EqualFold(filepath.Ext(conf.Catalog), ".csv") {
		return loadCSVCatalog(conf.Catalog)
	}

	c, err := catalog.LoadFile(conf.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", conf.Catalog, err)
	}
	return c, nil
}

func loadCSVCatalog(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	defer f.Close()

	return importutil.Catalog(path, f)
}

// NewSession wires a session from conf. Closing the returned cache is the
// caller's job.
func NewSession(ctx context.Context, conf *config.Config, logger *logger.Logger) (*session.Session, storage.Cache, error) {
	c, err := LoadCatalog(conf)
	if err != nil {
		return nil, nil, err
	}

	cache, err := OpenCache(ctx, conf, logger)
	if err != nil {
		return nil, nil, err
	}

	return session.New(ctx, c, cache, conf.PageSize, logger), cache, nil
}
