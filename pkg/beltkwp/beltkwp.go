package beltkwp

import (
	"crypto/cipher"
	"crypto/subtle"

	"github.com/andrei-cloud/go_keywrap/pkg/beltblock"
)

const (
	// KeySize is the only KEK length belt-kwp accepts.
	KeySize = beltblock.KeySize

	// BlockSize is the unit the belt-wblock transform operates on.
	BlockSize = beltblock.BlockSize

	// HeaderSize is the length of the public header that is enciphered
	// with the key data and recovered on unwrap as the integrity check.
	HeaderSize = 16
)

// Wrapper is a belt-kwp engine bound to one 256-bit KEK. The key schedule
// is built once and never mutated, so a Wrapper may be shared across
// goroutines.
type Wrapper struct {
	block cipher.Block
}

// New builds a wrapping engine for a 32-byte BelT KEK. The KEK bytes are
// not retained.
func New(key []byte) (*Wrapper, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	block, err := beltblock.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &Wrapper{block: block}, nil
}

// WrappedLen returns the belt-kwp output length for n bytes of key data.
func WrappedLen(n int) int {
	return n + HeaderSize
}

// Wrap applies belt-kwp to data under the engine's KEK. data must be a
// multiple of 16 bytes and at least 16 bytes long; header must be exactly
// 16 bytes. The result is the belt-wblock encryption of data followed by
// header, 16 bytes longer than the input.
func (w *Wrapper) Wrap(data, header []byte) ([]byte, error) {
	return w.WrapTo(data, header, make([]byte, WrappedLen(len(data))))
}

// WrapTo is Wrap writing into out, which must hold len(data)+16 bytes.
// It returns the slice of out carrying the wrapped value.
func (w *Wrapper) WrapTo(data, header, out []byte) ([]byte, error) {
	if len(header) != HeaderSize {
		return nil, ErrInvalidHeaderLength
	}
	if len(data)%BlockSize != 0 || len(data) < BlockSize {
		return nil, ErrInvalidDataLength
	}
	need := WrappedLen(len(data))
	if len(out) < need {
		return nil, ErrBufferTooSmall
	}
	out = out[:need]

	copy(out, data)
	copy(out[len(data):], header)
	wblockEncrypt(w.block, out)

	return out, nil
}

// Unwrap reverses Wrap and verifies the recovered header against header.
// On any verification failure it returns ErrIntegrityCheckFailed and no
// data.
func (w *Wrapper) Unwrap(wrapped, header []byte) ([]byte, error) {
	return w.UnwrapTo(wrapped, header, make([]byte, len(wrapped)))
}

// UnwrapTo is Unwrap writing into out. The belt-wblock inverse runs in
// place over the whole value, so out must hold len(wrapped) bytes even
// though the returned slice carries len(wrapped)-16; the recovered header
// sits in the tail of out after a successful call. The header comparison
// is constant-time, and out is zeroed before returning an integrity
// failure so no partial plaintext escapes.
func (w *Wrapper) UnwrapTo(wrapped, header, out []byte) ([]byte, error) {
	if len(header) != HeaderSize {
		return nil, ErrInvalidHeaderLength
	}
	if len(wrapped)%BlockSize != 0 || len(wrapped) < 2*BlockSize {
		return nil, ErrInvalidDataLength
	}
	if len(out) < len(wrapped) {
		return nil, ErrBufferTooSmall
	}
	out = out[:len(wrapped)]

	copy(out, wrapped)
	wblockDecrypt(w.block, out)

	split := len(out) - HeaderSize
	if subtle.ConstantTimeCompare(out[split:], header) != 1 {
		clear(out)
		return nil, ErrIntegrityCheckFailed
	}

	return out[:split], nil
}

// Wrap applies belt-kwp to data under a single-use KEK.
func Wrap(key, data, header []byte) ([]byte, error) {
	w, err := New(key)
	if err != nil {
		return nil, err
	}

	return w.Wrap(data, header)
}

// Unwrap reverses Wrap under a single-use KEK.
func Unwrap(key, wrapped, header []byte) ([]byte, error) {
	w, err := New(key)
	if err != nil {
		return nil, err
	}

	return w.Unwrap(wrapped, header)
}
