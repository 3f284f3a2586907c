package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadDefaults(t *testing.T) {
	for _, key := range []string{EnvDataFile, EnvLoader, EnvWindowMonths, EnvListenAddr, EnvCacheTTL} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadEnvFile(t *testing.T) {
	for _, key := range []string{EnvDataFile, EnvLoader, EnvWindowMonths, EnvListenAddr, EnvCacheTTL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv(EnvListenAddr, ":9000")

	path := filepath.Join(t.TempDir(), ".env")
	contents := "VENDORRISK_DATA_FILE=/data/deliveries.parquet\n" +
		"VENDORRISK_LOADER=duckdb\n" +
		"VENDORRISK_WINDOW_MONTHS=6\n" +
		"VENDORRISK_LISTEN_ADDR=:7000\n" +
		"VENDORRISK_CACHE_TTL=30s\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/deliveries.parquet", cfg.DataFile)
	assert.Equal(t, LoaderDuckDB, cfg.Loader)
	assert.Equal(t, 6, cfg.WindowMonths)
	assert.Equal(t, ":9000", cfg.ListenAddr, "environment wins over .env")
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestConfig_LoadInvalidEnv(t *testing.T) {
	t.Setenv(EnvWindowMonths, "three")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "invalid VENDORRISK_WINDOW_MONTHS")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError string
	}{
		{"no data file", func(c *Config) { c.DataFile = "" }, "data file must be set"},
		{"bad loader", func(c *Config) { c.Loader = "excel" }, "invalid loader"},
		{"window too small", func(c *Config) { c.WindowMonths = 0 }, "between 1 and 6"},
		{"window too large", func(c *Config) { c.WindowMonths = 7 }, "between 1 and 6"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "unsupported output format"},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, "cache ttl cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.expectError)
		})
	}
}
