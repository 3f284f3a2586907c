package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/vsinha/vendorrisk/pkg/config"
)

type ExitCode int

const (
	exitCodeSuccess ExitCode = 0
	exitCodeError   ExitCode = 1
)

// Run executes the vendorrisk CLI with the given arguments
func Run(args []string) ExitCode {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeError
	}

	return exitCodeSuccess
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vendorrisk",
		Short:         "Probabilistic supplier risk engine for historical delivery delays.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	defaults := config.Default()
	rootCmd.PersistentFlags().String("data", defaults.DataFile, "delivery records file (csv; parquet with --loader duckdb)")
	rootCmd.PersistentFlags().String("loader", defaults.Loader, "record loader (csv, duckdb)")
	rootCmd.PersistentFlags().String("env-file", "", "load settings from this .env file instead of ./.env")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")

	rootCmd.AddCommand(
		NewOptionsCmd().Command(),
		NewReportCmd().Command(),
		NewServeCmd().Command(),
	)

	return rootCmd
}

// newLogger logs to stderr so report output on stdout stays machine-readable
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
