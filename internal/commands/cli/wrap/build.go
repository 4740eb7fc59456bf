package wrap

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Assemble and run a wrap operation interactively",
		Long: `Assemble a wrap or unwrap operation through an interactive terminal
wizard. The wizard walks through the operation direction, algorithm, KEK,
optional BelT header and key data, then runs the operation and prints the
result.`,
		RunE: runBuild,
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	req, ok, err := runBuilderTUI()
	if err != nil {
		return fmt.Errorf("interactive builder failed: %w", err)
	}
	if !ok {
		cmd.Println("Operation cancelled.")

		return nil
	}

	return execute(cmd, req)
}
