package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/vsinha/vendorrisk/pkg/application/services"
	"github.com/vsinha/vendorrisk/pkg/config"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/metrics"
	csvrepo "github.com/vsinha/vendorrisk/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/repositories/duckdb"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/repositories/memory"
)

// loadConfig layers flags the user set explicitly over the .env file and
// the environment
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	var envFiles []string
	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return config.Config{}, err
	}

	if err := applyFlags(flags, &cfg); err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f := flags.Lookup(name); f != nil && f.Changed {
			err = apply()
		}
	}

	set("data", func() (e error) { cfg.DataFile, e = flags.GetString("data"); return })
	set("loader", func() (e error) { cfg.Loader, e = flags.GetString("loader"); return })
	set("verbose", func() (e error) { cfg.Verbose, e = flags.GetBool("verbose"); return })
	set("months", func() (e error) { cfg.WindowMonths, e = flags.GetInt("months"); return })
	set("format", func() (e error) { cfg.Format, e = flags.GetString("format"); return })
	set("output", func() (e error) { cfg.OutputDir, e = flags.GetString("output"); return })
	set("listen", func() (e error) { cfg.ListenAddr, e = flags.GetString("listen"); return })
	set("cache-ttl", func() (e error) { cfg.CacheTTL, e = flags.GetDuration("cache-ttl"); return })

	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}

func newLoader(log *slog.Logger, kind string) repositories.DeliveryLoader {
	if kind == config.LoaderDuckDB {
		return duckdb.NewLoader(log)
	}
	return csvrepo.NewLoader()
}

// openStore loads the configured data file into an immutable in-memory store
func openStore(ctx context.Context, log *slog.Logger, cfg config.Config) (*memory.DeliveryRepository, error) {
	start := time.Now()

	records, err := newLoader(log, cfg.Loader).LoadDeliveries(ctx, cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load deliveries from %s: %w", cfg.DataFile, err)
	}

	repo := memory.NewDeliveryRepository(len(records))
	if err := repo.LoadDeliveries(records); err != nil {
		return nil, fmt.Errorf("failed to build record store: %w", err)
	}
	metrics.RecordsLoaded.Set(float64(repo.Count()))

	log.Info("loaded deliveries",
		"file", cfg.DataFile,
		"loader", cfg.Loader,
		"count", repo.Count(),
		"materials", len(repo.Materials()),
		"vendors", len(repo.Vendors()),
		"duration", time.Since(start),
	)
	return repo, nil
}

func newRiskService(log *slog.Logger, repo repositories.DeliveryRepository, cfg config.Config) (*services.RiskService, error) {
	return services.NewRiskService(services.RiskServiceConfig{
		Logger:        log,
		Repository:    repo,
		DefaultWindow: cfg.WindowMonths,
	})
}
