package keywrap

import (
	"crypto/subtle"
	"encoding/binary"
)

// MaxPaddedLen is the largest key data length KWP can wrap, bounded by the
// 32-bit length field in the alternative initial value.
const MaxPaddedLen = 1<<32 - 1

// PaddedWrappedLen returns the KWP output length for n bytes of key data:
// the input zero-padded up to a semiblock boundary plus one semiblock,
// which is 16 bytes for anything up to 8 bytes of data.
func PaddedWrappedLen(n int) int {
	semis := (n + SemiblockSize - 1) / SemiblockSize

	return (semis + 1) * SemiblockSize
}

// WrapPadded applies AES-KWP to data of any length from 1 to 2^32-1 bytes.
func (k *Kek) WrapPadded(data []byte) ([]byte, error) {
	return k.WrapPaddedTo(data, make([]byte, PaddedWrappedLen(len(data))))
}

// WrapPaddedTo is WrapPadded writing into out, which must hold
// PaddedWrappedLen(len(data)) bytes. Data of 8 bytes or less takes the
// RFC 5649 section 4.1 single-block shortcut; anything longer runs the KW
// round loop seeded with the alternative initial value.
func (k *Kek) WrapPaddedTo(data, out []byte) ([]byte, error) {
	if len(data) == 0 || uint64(len(data)) > MaxPaddedLen {
		return nil, ErrInvalidDataLength
	}
	need := PaddedWrappedLen(len(data))
	if len(out) < need {
		return nil, ErrBufferTooSmall
	}
	out = out[:need]

	var aiv [SemiblockSize]byte
	copy(aiv[:4], kwpAIVPrefix[:])
	binary.BigEndian.PutUint32(aiv[4:], uint32(len(data)))

	if len(data) <= SemiblockSize {
		var block [2 * SemiblockSize]byte
		copy(block[:SemiblockSize], aiv[:])
		copy(block[SemiblockSize:], data)
		k.block.Encrypt(out, block[:])
		clear(block[SemiblockSize:])

		return out, nil
	}

	copy(out[SemiblockSize:], data)
	clear(out[SemiblockSize+len(data):])
	k.wrapInPlace(aiv, out)

	return out, nil
}

// UnwrapPadded reverses WrapPadded, validating the alternative initial
// value, the encoded length and the zero padding. Every violation surfaces
// as the same ErrIntegrityCheckFailed so corrupt padding cannot be told
// apart from a wrong KEK.
func (k *Kek) UnwrapPadded(wrapped []byte) ([]byte, error) {
	return k.UnwrapPaddedTo(wrapped, make([]byte, max(len(wrapped)-SemiblockSize, 0)))
}

// UnwrapPaddedTo is UnwrapPadded writing into out, which must hold
// len(wrapped)-8 bytes. The returned slice is truncated to the true data
// length recovered from the alternative initial value.
func (k *Kek) UnwrapPaddedTo(wrapped, out []byte) ([]byte, error) {
	if len(wrapped)%SemiblockSize != 0 || len(wrapped) < 2*SemiblockSize {
		return nil, ErrInvalidDataLength
	}
	n := len(wrapped)/SemiblockSize - 1
	need := n * SemiblockSize
	if len(out) < need {
		return nil, ErrBufferTooSmall
	}
	out = out[:need]

	var aiv [SemiblockSize]byte
	if n == 1 {
		var block [2 * SemiblockSize]byte
		k.block.Decrypt(block[:], wrapped)
		copy(aiv[:], block[:SemiblockSize])
		copy(out, block[SemiblockSize:])
		clear(block[SemiblockSize:])
	} else {
		copy(aiv[:], wrapped[:SemiblockSize])
		copy(out, wrapped[SemiblockSize:])
		aiv = k.unwrapInPlace(aiv, out)
	}

	// All checks run before any exit so the failure cause is not
	// observable from timing or the returned error.
	bad := subtle.ConstantTimeCompare(aiv[:4], kwpAIVPrefix[:]) != 1

	mli := uint64(binary.BigEndian.Uint32(aiv[4:]))
	if (mli+SemiblockSize-1)/SemiblockSize != uint64(n) {
		bad = true
		mli = uint64(need)
	}

	var pad byte
	for _, b := range out[mli:] {
		pad |= b
	}

	if bad || pad != 0 {
		clear(out)
		return nil, ErrIntegrityCheckFailed
	}

	return out[:mli], nil
}

// WrapPadded applies AES-KWP to data under a single-use KEK.
func WrapPadded(kek, data []byte) ([]byte, error) {
	k, err := NewKek(kek)
	if err != nil {
		return nil, err
	}

	return k.WrapPadded(data)
}

// UnwrapPadded reverses WrapPadded under a single-use KEK.
func UnwrapPadded(kek, wrapped []byte) ([]byte, error) {
	k, err := NewKek(kek)
	if err != nil {
		return nil, err
	}

	return k.UnwrapPadded(wrapped)
}
