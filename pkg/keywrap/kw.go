package keywrap

import "crypto/subtle"

// WrappedLen returns the KW output length for n bytes of key data.
func WrappedLen(n int) int {
	return n + SemiblockSize
}

// Wrap applies AES-KW to data, which must be a multiple of 8 bytes and at
// least 16 bytes long. The result is one semiblock longer than the input.
func (k *Kek) Wrap(data []byte) ([]byte, error) {
	return k.WrapTo(data, make([]byte, WrappedLen(len(data))))
}

// WrapTo is Wrap writing into out, which must hold len(data)+8 bytes.
// It returns the slice of out carrying the wrapped value.
func (k *Kek) WrapTo(data, out []byte) ([]byte, error) {
	if len(data)%SemiblockSize != 0 || len(data) < 2*SemiblockSize {
		return nil, ErrInvalidDataLength
	}
	need := WrappedLen(len(data))
	if len(out) < need {
		return nil, ErrBufferTooSmall
	}
	out = out[:need]

	copy(out[SemiblockSize:], data)
	k.wrapInPlace(kwIV, out)

	return out, nil
}

// Unwrap reverses Wrap and verifies the recovered integrity value. On any
// verification failure it returns ErrIntegrityCheckFailed and no data.
func (k *Kek) Unwrap(wrapped []byte) ([]byte, error) {
	return k.UnwrapTo(wrapped, make([]byte, max(len(wrapped)-SemiblockSize, 0)))
}

// UnwrapTo is Unwrap writing into out, which must hold len(wrapped)-8
// bytes. The integrity comparison is constant-time, and out is zeroed
// before returning an integrity failure so no partial plaintext escapes.
func (k *Kek) UnwrapTo(wrapped, out []byte) ([]byte, error) {
	if len(wrapped)%SemiblockSize != 0 || len(wrapped) < 3*SemiblockSize {
		return nil, ErrInvalidDataLength
	}
	need := len(wrapped) - SemiblockSize
	if len(out) < need {
		return nil, ErrBufferTooSmall
	}
	out = out[:need]

	var iv [SemiblockSize]byte
	copy(iv[:], wrapped[:SemiblockSize])
	copy(out, wrapped[SemiblockSize:])

	reg := k.unwrapInPlace(iv, out)
	if subtle.ConstantTimeCompare(reg[:], kwIV[:]) != 1 {
		clear(out)
		return nil, ErrIntegrityCheckFailed
	}

	return out, nil
}

// Wrap applies AES-KW to data under a single-use KEK.
func Wrap(kek, data []byte) ([]byte, error) {
	k, err := NewKek(kek)
	if err != nil {
		return nil, err
	}

	return k.Wrap(data)
}

// Unwrap reverses Wrap under a single-use KEK.
func Unwrap(kek, wrapped []byte) ([]byte, error) {
	k, err := NewKek(kek)
	if err != nil {
		return nil, err
	}

	return k.Unwrap(wrapped)
}
