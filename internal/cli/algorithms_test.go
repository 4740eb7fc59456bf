package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestResolveAlgorithm verifies the cipher and padded flag mapping.
func TestResolveAlgorithm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cipher  string
		padded  bool
		want    string
		wantErr bool
	}{
		{"aes plain", "aes", false, AlgAESKW, false},
		{"aes padded", "aes", true, AlgAESKWP, false},
		{"belt plain", "belt", false, AlgBeltKWP, false},
		{"belt padded", "belt", true, "", true},
		{"unknown cipher", "des", false, "", true},
		{"empty cipher", "", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveAlgorithm(tt.cipher, tt.padded)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}

				return
			}
			if err != nil {
				t.Fatalf("ResolveAlgorithm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestPrintSupportedAlgorithms verifies every algorithm appears in the
// listing.
func TestPrintSupportedAlgorithms(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := PrintSupportedAlgorithms(&buf); err != nil {
		t.Fatalf("PrintSupportedAlgorithms failed: %v", err)
	}

	out := buf.String()
	for _, alg := range []string{AlgAESKW, AlgAESKWP, AlgBeltKWP} {
		if !strings.Contains(out, alg) {
			t.Errorf("listing missing %s:\n%s", alg, out)
		}
	}
}
