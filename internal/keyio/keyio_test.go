package keyio

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrei-cloud/go_keywrap/pkg/keycheck"
)

// TestFromHexLengths accepts the three AES KEK lengths and rejects others.
func TestFromHexLengths(t *testing.T) {
	t.Parallel()
	for _, n := range []int{16, 24, 32} {
		k, err := FromHex(strings.Repeat("0F", n))
		if err != nil {
			t.Fatalf("FromHex(%d bytes) failed: %v", n, err)
		}
		if k.Len() != n {
			t.Errorf("Len: expected %d, got %d", n, k.Len())
		}
		if want := bytes.Repeat([]byte{0x0F}, n); !bytes.Equal(k.Bytes(), want) {
			t.Errorf("Bytes mismatch for %d-byte key", n)
		}
		k.Destroy()
	}

	for _, n := range []int{0, 8, 15, 17, 33} {
		if _, err := FromHex(strings.Repeat("00", n)); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("FromHex(%d bytes): expected ErrInvalidKeyLength, got %v", n, err)
		}
	}

	if _, err := FromHex("not-hex"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

// TestFromHexTrimsWhitespace tolerates surrounding space and newlines.
func TestFromHexTrimsWhitespace(t *testing.T) {
	t.Parallel()
	k, err := FromHex("  000102030405060708090A0B0C0D0E0F\n")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	defer k.Destroy()

	if k.Len() != 16 {
		t.Errorf("expected 16 bytes, got %d", k.Len())
	}
}

// TestFromBytesWipesSource verifies source material does not survive
// loading, on success or failure.
func TestFromBytesWipesSource(t *testing.T) {
	t.Parallel()
	src := bytes.Repeat([]byte{0xAB}, 32)
	k, err := FromBytes(src)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer k.Destroy()
	for i, b := range src {
		if b != 0 {
			t.Fatalf("source not wiped at %d: %02X", i, b)
		}
	}

	bad := bytes.Repeat([]byte{0xCD}, 10)
	if _, err := FromBytes(bad); !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
	for i, b := range bad {
		if b != 0 {
			t.Fatalf("rejected source not wiped at %d: %02X", i, b)
		}
	}
}

// TestFromFile reads a hex KEK with a trailing newline from disk.
func TestFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "kek.hex")
	content := []byte("5840DF6E29B02AF1AB493B705BF16EA1AE8338F4DCC176A8\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	k, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	defer k.Destroy()

	if k.Len() != 24 {
		t.Errorf("expected 24 bytes, got %d", k.Len())
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadPrecedence verifies flag beats environment beats file.
func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kek.hex")
	if err := os.WriteFile(path, []byte(strings.Repeat("33", 16)), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv(EnvKek, strings.Repeat("22", 16))

	k, err := Load(strings.Repeat("11", 16), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if k.Bytes()[0] != 0x11 {
		t.Errorf("expected flag value to win, got %02X", k.Bytes()[0])
	}
	k.Destroy()

	k, err = Load("", path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if k.Bytes()[0] != 0x22 {
		t.Errorf("expected environment value to win, got %02X", k.Bytes()[0])
	}
	k.Destroy()

	t.Setenv(EnvKek, "")
	k, err = Load("", path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if k.Bytes()[0] != 0x33 {
		t.Errorf("expected file value to win, got %02X", k.Bytes()[0])
	}
	k.Destroy()

	if _, err := Load("", ""); !errors.Is(err, ErrNoKey) {
		t.Errorf("expected ErrNoKey, got %v", err)
	}
}

// TestCheckValue verifies the check value is the AES-CMAC value of the key
// material rendered as uppercase hex.
func TestCheckValue(t *testing.T) {
	t.Parallel()
	const kekHex = "2B7E151628AED2A6ABF7158809CF4F3C"
	k, err := FromHex(kekHex)
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	defer k.Destroy()

	kcv, err := k.CheckValue()
	if err != nil {
		t.Fatalf("CheckValue failed: %v", err)
	}
	if len(kcv) != 6 {
		t.Fatalf("expected 6 hex chars, got %q", kcv)
	}
	if kcv != strings.ToUpper(kcv) {
		t.Errorf("check value not uppercase: %q", kcv)
	}

	raw, err := hex.DecodeString(kekHex)
	if err != nil {
		t.Fatalf("hex decode failed: %v", err)
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		t.Fatalf("aes.NewCipher failed: %v", err)
	}
	want, err := keycheck.CheckValue(block)
	if err != nil {
		t.Fatalf("keycheck.CheckValue failed: %v", err)
	}
	if kcv != strings.ToUpper(hex.EncodeToString(want)) {
		t.Errorf("check value mismatch: expected %X, got %s", want, kcv)
	}
}

// TestDefaultTestKek pins the development KEK to a BelT-capable length.
func TestDefaultTestKek(t *testing.T) {
	t.Parallel()
	k, err := FromHex(DefaultTestKekHex)
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	defer k.Destroy()

	if k.Len() != 32 {
		t.Errorf("expected 32 bytes, got %d", k.Len())
	}
}
