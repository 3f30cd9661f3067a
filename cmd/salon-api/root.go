package main

import (
	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
)

// DefaultContextTimeout bounds graceful shutdown, in seconds.
const DefaultContextTimeout = 30

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salon-api",
		Short:         "Salon inventory db-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newWorkerCmd(),
		newInvokeCmd(),
	)

	return root
}

// loadConfig is shared by every subcommand; configuration is read once here
// and passed down explicitly.
func loadConfig() (*config.Config, error) {
	return config.Load()
}
