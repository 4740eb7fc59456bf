package keywrap

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/andrei-cloud/go_keywrap/pkg/beltblock"
)

// mustHex decodes a hex string or fails the test.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex in test data: %v", err)
	}

	return b
}

// TestWrapUnwrapVectors checks AES-KW against the RFC 3394 section 4
// known-answer vectors in both directions.
func TestWrapUnwrapVectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		kek     string
		data    string
		wrapped string
	}{
		{
			name:    "128-bit data under 128-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F",
			data:    "00112233445566778899AABBCCDDEEFF",
			wrapped: "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5",
		},
		{
			name:    "128-bit data under 192-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F1011121314151617",
			data:    "00112233445566778899AABBCCDDEEFF",
			wrapped: "96778B25AE6CA435F92B5B97C050AED2468AB8A17AD84E5D",
		},
		{
			name:    "128-bit data under 256-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			data:    "00112233445566778899AABBCCDDEEFF",
			wrapped: "64E8C3F9CE0F5BA263E9777905818A2A93C8191E7D6E8AE7",
		},
		{
			name:    "192-bit data under 192-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F1011121314151617",
			data:    "00112233445566778899AABBCCDDEEFF0001020304050607",
			wrapped: "031D33264E15D33268F24EC260743EDCE1C6C7DDEE725A936BA814915C6762D2",
		},
		{
			name:    "192-bit data under 256-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			data:    "00112233445566778899AABBCCDDEEFF0001020304050607",
			wrapped: "A8F9BC1612C68B3FF6E6F4FBE30E71E4769C8B80A32CB8958CD5D17D6B254DA1",
		},
		{
			name:    "256-bit data under 256-bit kek",
			kek:     "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F",
			data:    "00112233445566778899AABBCCDDEEFF000102030405060708090A0B0C0D0E0F",
			wrapped: "28C9F404C4B810F4CBCCB35CFB87F8263F5786E2D80ED326CBC7F0E71A99F43BFB988B9B7A02DD21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kek, err := NewKek(mustHex(t, tt.kek))
			if err != nil {
				t.Fatalf("NewKek failed: %v", err)
			}

			data := mustHex(t, tt.data)
			want := mustHex(t, tt.wrapped)

			wrapped, err := kek.Wrap(data)
			if err != nil {
				t.Fatalf("Wrap failed: %v", err)
			}
			if !bytes.Equal(wrapped, want) {
				t.Errorf("Wrap mismatch: expected %X, got %X", want, wrapped)
			}
			if len(wrapped) != WrappedLen(len(data)) {
				t.Errorf("wrapped length: expected %d, got %d", WrappedLen(len(data)), len(wrapped))
			}

			unwrapped, err := kek.Unwrap(want)
			if err != nil {
				t.Fatalf("Unwrap failed: %v", err)
			}
			if !bytes.Equal(unwrapped, data) {
				t.Errorf("Unwrap mismatch: expected %X, got %X", data, unwrapped)
			}
		})
	}
}

// TestWrapDeterminism verifies wrapping has no hidden randomness.
func TestWrapDeterminism(t *testing.T) {
	t.Parallel()
	kek, err := NewKek(mustHex(t, "000102030405060708090A0B0C0D0E0F"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}
	data := mustHex(t, "00112233445566778899AABBCCDDEEFF")

	first, err := kek.Wrap(data)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	second, err := kek.Wrap(data)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Wrap not deterministic: %X vs %X", first, second)
	}
}

// TestNewKekInvalidSizes verifies KEK length validation.
func TestNewKekInvalidSizes(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 8, 15, 17, 23, 31, 33, 64} {
		if _, err := NewKek(make([]byte, n)); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("NewKek(%d bytes): expected ErrInvalidKeySize, got %v", n, err)
		}
	}
	for _, n := range []int{16, 24, 32} {
		if _, err := NewKek(make([]byte, n)); err != nil {
			t.Errorf("NewKek(%d bytes) failed: %v", n, err)
		}
	}
}

// TestWrapInvalidDataLengths verifies KW input validation.
func TestWrapInvalidDataLengths(t *testing.T) {
	t.Parallel()
	kek, err := NewKek(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}

	for _, n := range []int{0, 1, 7, 8, 9, 15, 17} {
		if _, err := kek.Wrap(make([]byte, n)); !errors.Is(err, ErrInvalidDataLength) {
			t.Errorf("Wrap(%d bytes): expected ErrInvalidDataLength, got %v", n, err)
		}
	}
	for _, n := range []int{0, 8, 16, 20, 23} {
		if _, err := kek.Unwrap(make([]byte, n)); !errors.Is(err, ErrInvalidDataLength) {
			t.Errorf("Unwrap(%d bytes): expected ErrInvalidDataLength, got %v", n, err)
		}
	}
}

// TestUnwrapCorruption flips every bit of a wrapped value and expects the
// integrity check to reject each variant.
func TestUnwrapCorruption(t *testing.T) {
	t.Parallel()
	kek, err := NewKek(mustHex(t, "000102030405060708090A0B0C0D0E0F"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}
	wrapped := mustHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")

	for i := range wrapped {
		for bit := 0; bit < 8; bit++ {
			corrupt := bytes.Clone(wrapped)
			corrupt[i] ^= 1 << bit
			if _, err := kek.Unwrap(corrupt); !errors.Is(err, ErrIntegrityCheckFailed) {
				t.Fatalf("byte %d bit %d: expected ErrIntegrityCheckFailed, got %v", i, bit, err)
			}
		}
	}
}

// TestUnwrapWrongKek verifies unwrap under a different KEK fails closed.
func TestUnwrapWrongKek(t *testing.T) {
	t.Parallel()
	right, err := NewKek(mustHex(t, "000102030405060708090A0B0C0D0E0F"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}
	wrong, err := NewKek(mustHex(t, "0F0102030405060708090A0B0C0D0E00"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}

	wrapped, err := right.Wrap(mustHex(t, "00112233445566778899AABBCCDDEEFF"))
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if _, err := wrong.Unwrap(wrapped); !errors.Is(err, ErrIntegrityCheckFailed) {
		t.Errorf("expected ErrIntegrityCheckFailed, got %v", err)
	}
}

// TestWrapToUnwrapToBuffers exercises the caller-buffer variants, including
// undersized destinations.
func TestWrapToUnwrapToBuffers(t *testing.T) {
	t.Parallel()
	kek, err := NewKek(mustHex(t, "000102030405060708090A0B0C0D0E0F"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}
	data := mustHex(t, "00112233445566778899AABBCCDDEEFF")
	want := mustHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")

	if _, err := kek.WrapTo(data, make([]byte, len(data)+7)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("WrapTo short buffer: expected ErrBufferTooSmall, got %v", err)
	}
	if _, err := kek.UnwrapTo(want, make([]byte, len(want)-9)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("UnwrapTo short buffer: expected ErrBufferTooSmall, got %v", err)
	}

	// Oversized buffers are used in place and the returned slice is exact.
	buf := make([]byte, 64)
	wrapped, err := kek.WrapTo(data, buf)
	if err != nil {
		t.Fatalf("WrapTo failed: %v", err)
	}
	if !bytes.Equal(wrapped, want) {
		t.Errorf("WrapTo mismatch: expected %X, got %X", want, wrapped)
	}
	if &wrapped[0] != &buf[0] {
		t.Error("WrapTo did not use the provided buffer")
	}

	out := make([]byte, 64)
	unwrapped, err := kek.UnwrapTo(wrapped, out)
	if err != nil {
		t.Fatalf("UnwrapTo failed: %v", err)
	}
	if !bytes.Equal(unwrapped, data) {
		t.Errorf("UnwrapTo mismatch: expected %X, got %X", data, unwrapped)
	}
	if &unwrapped[0] != &out[0] {
		t.Error("UnwrapTo did not use the provided buffer")
	}
}

// TestUnwrapToZeroesOnFailure verifies no recovered plaintext survives an
// integrity failure in the caller's buffer.
func TestUnwrapToZeroesOnFailure(t *testing.T) {
	t.Parallel()
	kek, err := NewKek(mustHex(t, "000102030405060708090A0B0C0D0E0F"))
	if err != nil {
		t.Fatalf("NewKek failed: %v", err)
	}
	wrapped := mustHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")
	wrapped[0] ^= 0x80

	out := bytes.Repeat([]byte{0xAA}, 16)
	if _, err := kek.UnwrapTo(wrapped, out); !errors.Is(err, ErrIntegrityCheckFailed) {
		t.Fatalf("expected ErrIntegrityCheckFailed, got %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("output buffer not zeroed at %d: %02X", i, b)
		}
	}
}

// TestPackageLevelWrapUnwrap covers the single-use KEK helpers.
func TestPackageLevelWrapUnwrap(t *testing.T) {
	t.Parallel()
	kek := mustHex(t, "000102030405060708090A0B0C0D0E0F")
	data := mustHex(t, "00112233445566778899AABBCCDDEEFF")
	want := mustHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")

	wrapped, err := Wrap(kek, data)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if !bytes.Equal(wrapped, want) {
		t.Errorf("Wrap mismatch: expected %X, got %X", want, wrapped)
	}

	unwrapped, err := Unwrap(kek, wrapped)
	if err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if !bytes.Equal(unwrapped, data) {
		t.Errorf("Unwrap mismatch: expected %X, got %X", data, unwrapped)
	}

	if _, err := Wrap(make([]byte, 5), data); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("expected ErrInvalidKeySize, got %v", err)
	}
}

// TestNewKekCipher runs the KW construction over a non-AES 128-bit block
// cipher and rejects ciphers with other block sizes.
func TestNewKekCipher(t *testing.T) {
	t.Parallel()
	block, err := beltblock.NewCipher(make([]byte, beltblock.KeySize))
	if err != nil {
		t.Fatalf("beltblock.NewCipher failed: %v", err)
	}

	kek, err := NewKekCipher(block)
	if err != nil {
		t.Fatalf("NewKekCipher failed: %v", err)
	}

	data := mustHex(t, "00112233445566778899AABBCCDDEEFF0001020304050607")
	wrapped, err := kek.Wrap(data)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	unwrapped, err := kek.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if !bytes.Equal(unwrapped, data) {
		t.Errorf("round trip mismatch: expected %X, got %X", data, unwrapped)
	}

	if _, err := NewKekCipher(eightByteBlock{}); !errors.Is(err, ErrInvalidCipherBlock) {
		t.Errorf("expected ErrInvalidCipherBlock, got %v", err)
	}
}

// eightByteBlock is a stub cipher with a non-16-byte block size.
type eightByteBlock struct{}

func (eightByteBlock) BlockSize() int          { return 8 }
func (eightByteBlock) Encrypt(dst, src []byte) { copy(dst, src) }
func (eightByteBlock) Decrypt(dst, src []byte) { copy(dst, src) }

func BenchmarkWrap(b *testing.B) {
	kek, err := NewKek(make([]byte, 32))
	if err != nil {
		b.Fatalf("NewKek failed: %v", err)
	}
	data := make([]byte, 32)
	out := make([]byte, WrappedLen(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kek.WrapTo(data, out); err != nil {
			b.Fatalf("WrapTo failed: %v", err)
		}
	}
}

func BenchmarkUnwrap(b *testing.B) {
	kek, err := NewKek(make([]byte, 32))
	if err != nil {
		b.Fatalf("NewKek failed: %v", err)
	}
	wrapped, err := kek.Wrap(make([]byte, 32))
	if err != nil {
		b.Fatalf("Wrap failed: %v", err)
	}
	out := make([]byte, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kek.UnwrapTo(wrapped, out); err != nil {
			b.Fatalf("UnwrapTo failed: %v", err)
		}
	}
}
