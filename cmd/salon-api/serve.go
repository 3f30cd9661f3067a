package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/app"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/router"
)

func newServeCmd() *cobra.Command {
	var withWorker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			srv := a.Server
			srv.SetupHTTPServer(router.NewRouter(srv, a.Handlers))

			if withWorker && srv.Job != nil {
				if err := srv.Job.Start(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if err != nil {
					a.Logger.Error().Err(err).Msg("server stopped")
				}
			case <-ctx.Done():
				a.Logger.Info().Msg("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
			defer cancel()

			return a.Close(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&withWorker, "with-worker", true, "process low stock alerts in-process")

	return cmd
}
