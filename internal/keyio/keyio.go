// Package keyio loads key-encrypting-keys into guarded memory. Key
// material lives in memguard locked buffers, which are kept off swap and
// wiped on destroy, and every intermediate copy made while loading is
// wiped before the loader returns.
package keyio

import (
	"crypto/aes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/awnumar/memguard"

	"github.com/andrei-cloud/go_keywrap/pkg/keycheck"
)

// EnvKek is the environment variable consulted when no explicit KEK value
// is given.
const EnvKek = "GOKEYWRAP_KEK"

// DefaultTestKekHex is the built-in development KEK. It is 32 bytes so
// both the AES and BelT engines come up, and it must never guard
// production key material.
const DefaultTestKekHex = "7A1D2B94C05E6F3810FD5C47A9E2B86D03C1F45E92A7D60B58E3941FA6C20D7B"

var (
	// ErrNoKey reports that no KEK source was available.
	ErrNoKey = errors.New("no kek configured")

	// ErrInvalidKeyLength reports KEK material that is not 16, 24 or 32
	// bytes.
	ErrInvalidKeyLength = errors.New("kek must be 16, 24 or 32 bytes")
)

// Key holds KEK material in a guarded allocation.
type Key struct {
	buf *memguard.LockedBuffer
}

// FromBytes builds a Key from raw key material. src is wiped whether or
// not the call succeeds.
func FromBytes(src []byte) (*Key, error) {
	switch len(src) {
	case 16, 24, 32:
	default:
		memguard.WipeBytes(src)

		return nil, ErrInvalidKeyLength
	}

	return &Key{buf: memguard.NewBufferFromBytes(src)}, nil
}

// FromHex builds a Key from a hex string, ignoring surrounding whitespace.
func FromHex(s string) (*Key, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("kek is not valid hex: %w", err)
	}

	return FromBytes(raw)
}

// FromFile reads a hex-encoded KEK from path. The raw file contents are
// wiped after decoding.
func FromFile(path string) (*Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kek file: %w", err)
	}

	k, err := FromHex(string(raw))
	memguard.WipeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("kek file %s: %w", path, err)
	}

	return k, nil
}

// Load resolves the KEK from the first available source: the explicit hex
// value, the GOKEYWRAP_KEK environment variable, then the configured key
// file. ErrNoKey is returned when every source is empty.
func Load(flagHex, filePath string) (*Key, error) {
	if flagHex != "" {
		return FromHex(flagHex)
	}
	if env := os.Getenv(EnvKek); env != "" {
		return FromHex(env)
	}
	if filePath != "" {
		return FromFile(filePath)
	}

	return nil, ErrNoKey
}

// Bytes exposes the key material inside the guarded buffer. The slice
// aliases locked memory and dies with Destroy; callers must not retain it.
func (k *Key) Bytes() []byte {
	return k.buf.Bytes()
}

// Len returns the key length in bytes.
func (k *Key) Len() int {
	return k.buf.Size()
}

// CheckValue computes the AES-CMAC check value of the key as uppercase
// hex.
func (k *Key) CheckValue() (string, error) {
	block, err := aes.NewCipher(k.buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("kek cipher init failed: %w", err)
	}

	kcv, err := keycheck.CheckValue(block)
	if err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(kcv)), nil
}

// Destroy wipes and releases the guarded buffer. It is safe to call more
// than once.
func (k *Key) Destroy() {
	k.buf.Destroy()
}
