// Command salon-api runs the salon inventory db-api.
//
//	salon-api serve    HTTP server (plus the alert worker when configured)
//	salon-api worker   low-stock alert worker only
//	salon-api invoke   handle one event read from stdin, print the response
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
