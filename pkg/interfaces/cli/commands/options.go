package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type OptionsCmd struct{}

func NewOptionsCmd() *OptionsCmd {
	return &OptionsCmd{}
}

func (c *OptionsCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the materials, locations and vendors in the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
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

			opts := svc.Options()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "📦 Materials (%d):\n", len(opts.Materials))
			for _, m := range opts.Materials {
				fmt.Fprintf(out, "  %s\n", m)
			}
			// the first entry is the All selector, not a site
			sites := opts.Locations[1:]
			fmt.Fprintf(out, "🌍 Locations (%d):\n", len(sites))
			for _, l := range sites {
				fmt.Fprintf(out, "  %s\n", l)
			}
			fmt.Fprintf(out, "📌 Vendors (%d):\n", len(repo.Vendors()))
			for _, v := range repo.Vendors() {
				fmt.Fprintf(out, "  %s\n", v)
			}
			fmt.Fprintf(out, "🗓️  Window: %d-%d months (default %d)\n", opts.MinWindow, opts.MaxWindow, opts.DefaultWindow)
			return nil
		},
	}
}
