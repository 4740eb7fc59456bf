// Package server provides server-related CLI commands.
package server

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/config"
	"github.com/andrei-cloud/go_keywrap/internal/keyio"
	"github.com/andrei-cloud/go_keywrap/internal/logging"
	"github.com/andrei-cloud/go_keywrap/internal/server"
	"github.com/andrei-cloud/go_keywrap/internal/service"
	"github.com/andrei-cloud/go_keywrap/internal/service/logic"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the key wrap server",
		Long:  `Start the key wrap server to process key wrapping commands over TCP.`,
		RunE:  runServe,
	}

	// Add serve command specific flags that can override config.
	cmd.Flags().String("host", "localhost", "Server host")
	cmd.Flags().IntP("port", "p", 1500, "Server port")
	cmd.Flags().String("kek", "", "Key-encrypting-key hex value")
	cmd.Flags().String("kek-file", "", "Path to a hex-encoded KEK file")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
	cmd.Flags().Bool("human", false, "Enable human-readable logs")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Get configuration.
	cfg := config.Get()

	// Command flags override config file values.
	host := cfg.Server.Host
	port := cfg.Server.Port
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}

	// Initialize logger using config values with CLI flags taking
	// precedence.
	debug, _ := cmd.Flags().GetBool("debug")
	human, _ := cmd.Flags().GetBool("human")
	logging.InitLogger(
		debug || cfg.Log.Level == "debug",
		human || cfg.Log.Format == "human",
	)

	// Resolve the KEK from flag, environment or configured file.
	kekHex, _ := cmd.Flags().GetString("kek")
	kekFile, _ := cmd.Flags().GetString("kek-file")
	if kekFile == "" {
		kekFile = cfg.Kek.File
	}

	key, err := keyio.Load(kekHex, kekFile)
	if errors.Is(err, keyio.ErrNoKey) {
		log.Warn().Msg("no KEK configured, using built-in development KEK")
		key, err = keyio.FromHex(keyio.DefaultTestKekHex)
	}
	if err != nil {
		return fmt.Errorf("failed to load KEK: %w", err)
	}

	// Initialize the wrap service, then wipe the loaded key material. The
	// engines keep their own expanded state.
	svc, err := service.New(key.Bytes())
	key.Destroy()
	if err != nil {
		return fmt.Errorf("failed to initialize wrap service: %w", err)
	}

	// Seed the scratch pool before traffic arrives.
	logic.PrewarmPool(32)

	// Initialize the server with configured host and port.
	serverAddr := fmt.Sprintf("%s:%d", host, port)
	srv, err := server.NewServer(serverAddr, svc)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	sig := <-stopChan
	log.Info().Msgf("signal %v received, shutting down server", sig)

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Fields(logic.PoolStats()).Msg("scratch pool statistics")
	log.Info().Msg("server stopped gracefully")

	return nil
}
