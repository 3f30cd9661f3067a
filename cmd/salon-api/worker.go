package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/app"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the low stock alert worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
				defer cancel()
				if err := a.Close(ctx); err != nil {
					a.Logger.Error().Err(err).Msg("shutdown failed")
				}
			}()

			if a.Server.Job == nil {
				return errors.New("worker needs SALON_REDIS__ADDRESS and SALON_ALERTS__ENABLED=true")
			}

			// Run blocks until SIGINT or SIGTERM.
			return a.Server.Job.Run()
		},
	}
}
