package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/app"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
)

func newInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke",
		Short: "Handle one event from stdin and print the response",
		Long: `Reads a serverless event such as
  {"httpMethod":"GET","queryStringParameters":{"table":"products"}}
from stdin and writes the response event to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			req, err := event.Decode(raw)
			if err != nil {
				return fmt.Errorf("invalid event: %w", err)
			}

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
				_ = a.Close(ctx)
			}()

			res := a.Handlers.DBAPI.Handle(cmd.Context(), req)

			out, err := event.Encode(res)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
