package keywrap

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// SemiblockSize is the 64-bit unit the KW round function operates on.
const SemiblockSize = 8

// kwIV is the RFC 3394 section 2.2.3.1 default initial value. Recovering it
// on unwrap is the integrity check.
var kwIV = [SemiblockSize]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// kwpAIVPrefix is the constant half of the RFC 5649 alternative initial
// value; the other half carries the data length.
var kwpAIVPrefix = [4]byte{0xA6, 0x59, 0x59, 0xA6}

// Kek is a wrapping engine bound to one Key-Encrypting-Key. The expanded
// key schedule is built once and never mutated, so a Kek may be shared
// across goroutines.
type Kek struct {
	block cipher.Block
}

// NewKek builds a wrapping engine for an AES KEK of 16, 24 or 32 bytes.
// The KEK bytes are not retained.
func NewKek(kek []byte) (*Kek, error) {
	switch len(kek) {
	case 16, 24, 32:
	default:
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	return &Kek{block: block}, nil
}

// NewKekCipher builds a wrapping engine over an already expanded block
// cipher. The cipher must have a 16-byte block; this admits non-AES 128-bit
// block ciphers into the same KW construction.
func NewKekCipher(block cipher.Block) (*Kek, error) {
	if block.BlockSize() != 2*SemiblockSize {
		return nil, ErrInvalidCipherBlock
	}

	return &Kek{block: block}, nil
}

// wrapInPlace runs the forward W transform of SP 800-38F section 6.1 over
// out. The trailing semiblocks of out must already hold the payload; iv
// seeds the integrity register, which lands in the leading semiblock.
// Steps feed R[i] into the next register value, so the loop cannot be
// parallelized.
func (k *Kek) wrapInPlace(iv [SemiblockSize]byte, out []byte) {
	n := len(out)/SemiblockSize - 1
	var block [2 * SemiblockSize]byte
	copy(block[:SemiblockSize], iv[:])

	for j := 0; j <= 5; j++ {
		for i := 1; i <= n; i++ {
			chunk := out[i*SemiblockSize : (i+1)*SemiblockSize]
			copy(block[SemiblockSize:], chunk)
			k.block.Encrypt(block[:], block[:])

			t := uint64(n*j + i)
			reg := binary.BigEndian.Uint64(block[:SemiblockSize]) ^ t
			binary.BigEndian.PutUint64(block[:SemiblockSize], reg)

			copy(chunk, block[SemiblockSize:])
		}
	}

	copy(out[:SemiblockSize], block[:SemiblockSize])
}

// unwrapInPlace runs the inverse transform over buf, which holds the n
// payload semiblocks R[1..n]. iv seeds the register from the leading
// ciphertext semiblock; the recovered register is returned for the caller's
// integrity comparison.
func (k *Kek) unwrapInPlace(iv [SemiblockSize]byte, buf []byte) [SemiblockSize]byte {
	n := len(buf) / SemiblockSize
	var block [2 * SemiblockSize]byte
	copy(block[:SemiblockSize], iv[:])

	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			chunk := buf[(i-1)*SemiblockSize : i*SemiblockSize]

			t := uint64(n*j + i)
			reg := binary.BigEndian.Uint64(block[:SemiblockSize]) ^ t
			binary.BigEndian.PutUint64(block[:SemiblockSize], reg)

			copy(block[SemiblockSize:], chunk)
			k.block.Decrypt(block[:], block[:])
			copy(chunk, block[SemiblockSize:])
		}
	}

	var reg [SemiblockSize]byte
	copy(reg[:], block[:SemiblockSize])

	return reg
}
