// Package wrap provides the wrap and unwrap command implementations.
package wrap

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/go_keywrap/internal/cli"
	"github.com/andrei-cloud/go_keywrap/internal/keyio"
	"github.com/andrei-cloud/go_keywrap/pkg/beltkwp"
	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

const (
	opWrap   = "wrap"
	opUnwrap = "unwrap"
)

// wrapRequest carries one wrap or unwrap operation, whether it was
// assembled from command flags or by the interactive builder.
type wrapRequest struct {
	operation string
	algorithm string
	kekHex    string
	headerHex string
	dataHex   string
}

// execute runs the request against the selected engine and prints the
// result with the key check value of the KEK.
func execute(cmd *cobra.Command, req wrapRequest) error {
	key, err := keyio.FromHex(req.kekHex)
	if err != nil {
		return fmt.Errorf("invalid KEK: %w", err)
	}
	defer key.Destroy()

	data, err := hex.DecodeString(req.dataHex)
	if err != nil {
		return fmt.Errorf("invalid data format: %w", err)
	}

	var header []byte
	if req.algorithm == cli.AlgBeltKWP {
		if req.headerHex == "" {
			return errors.New("header is required for belt-kwp")
		}
		header, err = hex.DecodeString(req.headerHex)
		if err != nil {
			return fmt.Errorf("invalid header format: %w", err)
		}
	}

	var result []byte
	switch req.algorithm {
	case cli.AlgAESKW:
		if req.operation == opWrap {
			result, err = keywrap.Wrap(key.Bytes(), data)
		} else {
			result, err = keywrap.Unwrap(key.Bytes(), data)
		}
	case cli.AlgAESKWP:
		if req.operation == opWrap {
			result, err = keywrap.WrapPadded(key.Bytes(), data)
		} else {
			result, err = keywrap.UnwrapPadded(key.Bytes(), data)
		}
	case cli.AlgBeltKWP:
		if req.operation == opWrap {
			result, err = beltkwp.Wrap(key.Bytes(), data, header)
		} else {
			result, err = beltkwp.Unwrap(key.Bytes(), data, header)
		}
	default:
		return fmt.Errorf("unsupported algorithm: %s", req.algorithm)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", req.operation, err)
	}

	kcv, err := key.CheckValue()
	if err != nil {
		return fmt.Errorf("failed to calculate KCV: %w", err)
	}

	// Output results.
	cmd.Printf("Algorithm: %s\n", req.algorithm)
	if req.operation == opWrap {
		cmd.Printf("Wrapped Key: %s\n", strings.ToUpper(hex.EncodeToString(result)))
	} else {
		cmd.Printf("Key Data: %s\n", strings.ToUpper(hex.EncodeToString(result)))
	}
	cmd.Printf("KCV: %s\n", kcv)

	return nil
}
