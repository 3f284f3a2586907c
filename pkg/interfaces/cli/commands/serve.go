package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vsinha/vendorrisk/pkg/config"
	"github.com/vsinha/vendorrisk/pkg/interfaces/web"
)

type ServeCmd struct{}

func NewServeCmd() *ServeCmd {
	return &ServeCmd{}
}

func (c *ServeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive risk dashboard and JSON API",
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

			srv, err := web.NewServer(web.Config{
				Logger:     log,
				Service:    svc,
				Repository: repo,
				CacheTTL:   cfg.CacheTTL,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx, cfg.ListenAddr)
		},
	}

	defaults := config.Default()
	cmd.Flags().String("listen", defaults.ListenAddr, "address to serve the dashboard on")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "how long rendered reports are cached (0 disables)")

	return cmd
}
