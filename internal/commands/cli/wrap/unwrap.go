package wrap

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/cli"
)

// NewUnwrapCommand creates the unwrap command.
func NewUnwrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unwrap",
		Short: "Unwrap a wrapped key and recover the key data",
		Long: `Unwrap a previously wrapped key under the key-encrypting-key (KEK).
The command verifies the integrity of the wrapped value before releasing
any key data; a wrapped key that fails the integrity check is rejected
without output.`,
		RunE: runUnwrap,
	}

	// Add flags.
	cmd.Flags().String("kek", "", "Key-encrypting-key in hex format")
	cmd.Flags().String("data", "", "Wrapped key in hex format")
	cmd.Flags().String("cipher", "aes", "Block cipher (aes or belt)")
	cmd.Flags().Bool("padded", false, "Use the padded wrap variant for arbitrary data lengths")
	cmd.Flags().String("header", "", "Public header in hex format (belt only, 32 characters)")

	if err := cmd.MarkFlagRequired("kek"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("data"); err != nil {
		panic(err)
	}

	return cmd
}

func runUnwrap(cmd *cobra.Command, _ []string) error {
	// Get command flags.
	kekHex, _ := cmd.Flags().GetString("kek")
	dataHex, _ := cmd.Flags().GetString("data")
	cipher, _ := cmd.Flags().GetString("cipher")
	padded, _ := cmd.Flags().GetBool("padded")
	headerHex, _ := cmd.Flags().GetString("header")

	algorithm, err := cli.ResolveAlgorithm(cipher, padded)
	if err != nil {
		return err
	}

	return execute(cmd, wrapRequest{
		operation: opUnwrap,
		algorithm: algorithm,
		kekHex:    kekHex,
		headerHex: headerHex,
		dataHex:   dataHex,
	})
}
