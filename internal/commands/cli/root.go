// Package cli provides the CLI command structure for go_keywrap.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/config"
)

// NewRootCommand creates and returns the root command with all subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go_keywrap",
		Short: "Symmetric key wrapping server and utilities",
		Long: `A key wrapping server and utility tool implementing AES Key Wrap (RFC 3394),
AES Key Wrap with Padding (RFC 5649) and BelT key wrapping (STB 34.101.31-2020).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Initialize configuration before running any command.
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			return nil
		},
	}

	// Register all commands.
	RegisterCommands(rootCmd)

	return rootCmd
}
