package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/commands/cli"
	"github.com/andrei-cloud/go_keywrap/internal/logging"
)

// main initializes logging and dispatches the root command.
func main() {
	logging.InitLogger(false, true)

	rootCmd := cli.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
