package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vsinha/vendorrisk/pkg/application/services"
	"github.com/vsinha/vendorrisk/pkg/config"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/interfaces/cli/output"
)

type ReportCmd struct{}

func NewReportCmd() *ReportCmd {
	return &ReportCmd{}
}

func (c *ReportCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize vendor delay risk for a material, with optional vendor drill-downs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			material, err := cmd.Flags().GetString("material")
			if err != nil {
				return fmt.Errorf("failed to get material flag: %w", err)
			}
			location, err := cmd.Flags().GetString("location")
			if err != nil {
				return fmt.Errorf("failed to get location flag: %w", err)
			}
			vendors, err := cmd.Flags().GetStringSlice("vendor")
			if err != nil {
				return fmt.Errorf("failed to get vendor flag: %w", err)
			}

			log := newLogger(os.Stderr, cfg.Verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			repo, err := openStore(ctx, log, cfg)
			if err != nil {
				return err
			}
			svc, err := newRiskService(log, repo, cfg)
			if err != nil {
				return err
			}

			req := services.ReportRequest{
				Material:     entities.MaterialID(material),
				Location:     entities.Location(location),
				WindowMonths: cfg.WindowMonths,
			}
			for _, v := range vendors {
				req.Vendors = append(req.Vendors, entities.VendorID(v))
			}

			report, err := svc.BuildReport(ctx, req)
			if err != nil {
				return err
			}

			return output.Generate(report, output.Config{
				Format:    cfg.Format,
				OutputDir: cfg.OutputDir,
				Verbose:   cfg.Verbose,
				Writer:    cmd.OutOrStdout(),
			})
		},
	}

	defaults := config.Default()
	cmd.Flags().StringP("material", "m", "", "material to analyze (default: first material alphabetically)")
	cmd.Flags().StringP("location", "l", string(entities.AllLocations), "location to analyze, or All")
	cmd.Flags().IntP("months", "n", defaults.WindowMonths, "analyze the last N months (1-6)")
	cmd.Flags().StringSlice("vendor", nil, "vendor to drill into (repeatable or comma separated)")
	cmd.Flags().StringP("format", "f", defaults.Format, "output format (text, json, yaml, csv, html)")
	cmd.Flags().StringP("output", "o", "", "write results to this directory instead of stdout")

	return cmd
}
