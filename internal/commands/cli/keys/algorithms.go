package keys

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/cli"
)

// NewAlgorithmsCommand creates the algorithms command.
func NewAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported wrap algorithms",
		Long:  `List all supported key wrap algorithms with their descriptions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.PrintSupportedAlgorithms(cmd.OutOrStdout())
		},
	}
}
