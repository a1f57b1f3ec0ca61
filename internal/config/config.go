package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/GustavoCaso/carfinder/internal/logger"
)

type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
	StorageMemory StorageBackend = "memory"
)

type DBConfig struct {
	Source       string `toml:"source"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`

	// ConnMaxLifetime is written as a duration string in TOML, e.g. "30m".
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	JournalMode     string        `toml:"journal_mode"`
	Synchronous     string        `toml:"synchronous"`
	BusyTimeout     int           `toml:"busy_timeout"`
}

type Config struct {
	Storage   StorageBackend `toml:"storage"`
	DB        DBConfig       `toml:"db"`
	StateFile string         `toml:"state_file"`
	// Catalog is a JSON dataset path. Empty uses the embedded dataset.
	Catalog  string `toml:"catalog"`
	PageSize int    `toml:"page_size"`
	Currency string `toml:"currency"`
	// Budget is the most the buyer wants to pay for one car. 0 disables it.
	Budget float64       `toml:"budget"`
	Port   string        `toml:"port"`
	Logger logger.Config `toml:"logger"`

	// Warnings collects problems found while parsing that fell back to defaults.
	Warnings []string `toml:"-"`
}

const (
	defaultStorage     = StorageSQLite
	defaultDBFile      = "carfinder.db"
	defaultStateFile   = "carfinder.json"
	defaultPageSize    = 10
	defaultCurrency    = "₹"
	defaultPort        = "8080"
	defaultJournalMode = "WAL"
	defaultBusyTimeout = 5000
	defaultLogLevel    = logger.LevelInfo
	defaultLogFormat   = logger.FormatText
	defaultLogOutput   = "stdout"
)

func defaults() *Config {
	return &Config{
		Storage: defaultStorage,
		DB: DBConfig{
			Source:       defaultDBFile,
			MaxOpenConns: 1,
			JournalMode:  defaultJournalMode,
			BusyTimeout:  defaultBusyTimeout,
		},
		StateFile: defaultStateFile,
		PageSize:  defaultPageSize,
		Currency:  defaultCurrency,
		Port:      defaultPort,
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
	}
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) parseEnv() {
	if storage := os.Getenv("CARFINDER_STORAGE"); storage != "" {
		c.Storage = StorageBackend(storage)
	}

	if db := os.Getenv("CARFINDER_DB"); db != "" {
		c.DB.Source = db
	}

	if stateFile := os.Getenv("CARFINDER_STATE_FILE"); stateFile != "" {
		c.StateFile = stateFile
	}

	if catalog := os.Getenv("CARFINDER_CATALOG"); catalog != "" {
		c.Catalog = catalog
	}

	if pageSize := os.Getenv("CARFINDER_PAGE_SIZE"); pageSize != "" {
		size, err := strconv.Atoi(pageSize)
		if err != nil {
			c.warnf("CARFINDER_PAGE_SIZE %q is not a number, using %d", pageSize, c.PageSize)
		} else {
			c.PageSize = size
		}
	}

	if currency := os.Getenv("CARFINDER_CURRENCY"); currency != "" {
		c.Currency = currency
	}

	if budget := os.Getenv("CARFINDER_BUDGET"); budget != "" {
		amount, err := strconv.ParseFloat(budget, 64)
		if err != nil || amount < 0 {
			c.warnf("CARFINDER_BUDGET %q is not a valid amount, ignoring it", budget)
		} else {
			c.Budget = amount
		}
	}

	if port := os.Getenv("CARFINDER_PORT"); port != "" {
		c.Port = port
	}

	if level := os.Getenv("CARFINDER_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("CARFINDER_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("CARFINDER_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage %q (must be sqlite, file or memory)", c.Storage)
	}

	if c.PageSize < 1 {
		c.warnf("page size %d must be positive, using %d", c.PageSize, defaultPageSize)
		c.PageSize = defaultPageSize
	}

	return nil
}

// loadEnvFile loads variables from path, or from ".env" when path is empty.
// A missing default file is not an error.
func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Parse builds the configuration from, in increasing precedence: defaults,
// the TOML file named by CARFINDER_CONFIG, and environment variables (which
// may come from a .env file, or the file named by CARFINDER_ENV_FILE).
func Parse() (*Config, error) {
	if err := loadEnvFile(os.Getenv("CARFINDER_ENV_FILE")); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	conf := defaults()

	if path := os.Getenv("CARFINDER_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	conf.parseEnv()

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}
