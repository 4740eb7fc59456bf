package wrap

import (
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/cli"
)

// NewWrapCommand creates the wrap command.
func NewWrapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Wrap key data under a key-encrypting-key",
		Long: `Wrap key data under a key-encrypting-key (KEK).
The command selects AES Key Wrap (RFC 3394), AES Key Wrap with Padding
(RFC 5649) or BelT key wrapping (STB 34.101.31-2020) based on the cipher
and padding flags, and outputs the wrapped key together with the Key
Check Value (KCV) of the KEK.`,
		RunE: runWrap,
	}

	// Add flags.
	cmd.Flags().String("kek", "", "Key-encrypting-key in hex format")
	cmd.Flags().String("data", "", "Key data to wrap in hex format")
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

func runWrap(cmd *cobra.Command, _ []string) error {
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
		operation: opWrap,
		algorithm: algorithm,
		kekHex:    kekHex,
		headerHex: headerHex,
		dataHex:   dataHex,
	})
}
