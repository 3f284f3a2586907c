package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	LoaderCSV    = "csv"
	LoaderDuckDB = "duckdb"

	EnvDataFile     = "VENDORRISK_DATA_FILE"
	EnvLoader       = "VENDORRISK_LOADER"
	EnvWindowMonths = "VENDORRISK_WINDOW_MONTHS"
	EnvListenAddr   = "VENDORRISK_LISTEN_ADDR"
	EnvCacheTTL     = "VENDORRISK_CACHE_TTL"
)

var supportedFormats = map[string]bool{"text": true, "json": true, "yaml": true, "csv": true, "html": true}

// Config holds process-wide settings shared by all commands
type Config struct {
	DataFile     string
	Loader       string
	WindowMonths int
	ListenAddr   string
	CacheTTL     time.Duration
	Format       string
	OutputDir    string
	Verbose      bool
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DataFile:     "vendor_delay_data.csv",
		Loader:       LoaderCSV,
		WindowMonths: 3,
		ListenAddr:   ":8501",
		CacheTTL:     5 * time.Minute,
		Format:       "text",
	}
}

// Load returns the defaults overlaid with an optional .env file and the
// process environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load env file %s: %w", f, err)
			}
		}
	}

	cfg := Default()
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvLoader); v != "" {
		cfg.Loader = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvWindowMonths); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %s", EnvWindowMonths, v)
		}
		cfg.WindowMonths = months
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %s", EnvCacheTTL, v)
		}
		cfg.CacheTTL = ttl
	}

	return cfg, nil
}

// Validate checks that the configuration can be used
func (c Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data file must be set")
	}
	if c.Loader != LoaderCSV && c.Loader != LoaderDuckDB {
		return fmt.Errorf("invalid loader: %s (expected %s or %s)", c.Loader, LoaderCSV, LoaderDuckDB)
	}
	if c.WindowMonths < 1 || c.WindowMonths > 6 {
		return fmt.Errorf("window months must be between 1 and 6, got %d", c.WindowMonths)
	}
	if !supportedFormats[c.Format] {
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative, got %s", c.CacheTTL)
	}
	return nil
}
