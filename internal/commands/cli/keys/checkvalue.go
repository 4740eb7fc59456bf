// Package keys provides key inspection commands.
package keys

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/keyio"
)

// NewCheckValueCommand creates the checkvalue command.
func NewCheckValueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkvalue",
		Short: "Calculate the check value of a key",
		Long: `Calculate the Key Check Value (KCV) of a key.
The KCV is the leading three bytes of the AES-CMAC of a zero block under
the key, and identifies key material without exposing it.`,
		RunE: runCheckValue,
	}

	// Add flags.
	cmd.Flags().String("key", "", "Key in hex format (32, 48 or 64 characters)")

	if err := cmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}

	return cmd
}

func runCheckValue(cmd *cobra.Command, _ []string) error {
	keyHex, _ := cmd.Flags().GetString("key")

	key, err := keyio.FromHex(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	defer key.Destroy()

	kcv, err := key.CheckValue()
	if err != nil {
		return fmt.Errorf("failed to calculate KCV: %w", err)
	}

	// Output results.
	cmd.Printf("Key Length: %d bytes\n", key.Len())
	cmd.Printf("KCV: %s\n", kcv)

	return nil
}
