package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"localgame-server/di"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP API and the periodic catalog refresher. Stops gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default from config)")

	return cmd
}

func runServe(parent context.Context, addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.HTTPAddress = addr
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("closing container", zap.Error(err))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	logger.Info("starting periodic catalog refresh", zap.Duration("interval", cfg.Refresh.Interval))
	g.Go(func() error {
		container.CatalogRefresherService.Run(gctx, cfg.Refresh.Interval)
		return nil
	})

	if container.FixtureWatcherService != nil {
		g.Go(func() error {
			return container.FixtureWatcherService.Run(gctx)
		})
	}
	g.Go(func() error {
		return container.LocalGameHttpServer.Start(gctx)
	})

	return g.Wait()
}
