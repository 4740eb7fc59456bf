// Package cli contains utilities for CLI operations.
package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Algorithm identifiers accepted by the wrap and unwrap commands.
const (
	AlgAESKW   = "aes-kw"
	AlgAESKWP  = "aes-kwp"
	AlgBeltKWP = "belt-kwp"
)

// GetSupportedAlgorithms returns a map of algorithm identifiers to readable descriptions.
func GetSupportedAlgorithms() map[string]string {
	return map[string]string{
		AlgAESKW:   "AES Key Wrap, RFC 3394 / NIST SP 800-38F (KEK 16/24/32 bytes, data a multiple of 8 and at least 16 bytes)",
		AlgAESKWP:  "AES Key Wrap with Padding, RFC 5649 (KEK 16/24/32 bytes, data 1 to 2^32-1 bytes)",
		AlgBeltKWP: "BelT key wrap, STB 34.101.31-2020 (KEK 32 bytes, data a multiple of 16 bytes, public 16-byte header)",
	}
}

// ResolveAlgorithm maps the cipher and padded flags onto an algorithm
// identifier. BelT has no padded variant; its length handling is part of
// the algorithm itself.
func ResolveAlgorithm(cipher string, padded bool) (string, error) {
	switch cipher {
	case "aes":
		if padded {
			return AlgAESKWP, nil
		}

		return AlgAESKW, nil
	case "belt":
		if padded {
			return "", errors.New("belt-kwp has no padded variant")
		}

		return AlgBeltKWP, nil
	default:
		return "", fmt.Errorf("unsupported cipher: %s (valid: aes, belt)", cipher)
	}
}

// PrintSupportedAlgorithms writes the supported wrap algorithms to w as an
// aligned table.
func PrintSupportedAlgorithms(w io.Writer) error {
	algs := GetSupportedAlgorithms()
	names := make([]string, 0, len(algs))
	for name := range algs {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Algorithm\tDescription")
	fmt.Fprintln(tw, "---------\t-----------")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, algs[name])
	}

	return tw.Flush()
}
