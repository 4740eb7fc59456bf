package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/commands/cli/keys"
	"github.com/andrei-cloud/go_keywrap/internal/commands/cli/server"
	"github.com/andrei-cloud/go_keywrap/internal/commands/cli/wrap"
)

// RegisterCommands registers all root commands.
func RegisterCommands(root *cobra.Command) {
	// Root commands.
	root.AddCommand(wrap.NewWrapCommand())
	root.AddCommand(wrap.NewUnwrapCommand())
	root.AddCommand(wrap.NewBuildCommand())
	root.AddCommand(keys.NewCheckValueCommand())
	root.AddCommand(keys.NewAlgorithmsCommand())
	root.AddCommand(server.NewServeCommand())
}
