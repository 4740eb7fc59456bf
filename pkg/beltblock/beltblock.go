// Package beltblock implements the BelT block cipher defined in STB 34.101.31-2020.
//
// BelT is a 128-bit block cipher with a 256-bit key. The package exposes it
// through the standard crypto/cipher.Block interface so it can back generic
// block-cipher constructions such as key wrapping.
package beltblock

import (
	"crypto/cipher"
	"encoding/binary"
	"strconv"
)

const (
	// BlockSize is the BelT block size in bytes.
	BlockSize = 16
	// KeySize is the only supported BelT key size in bytes.
	KeySize = 32
)

// KeySizeError reports an unsupported key length in bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "beltblock: invalid key size " + strconv.Itoa(int(k))
}

// beltCipher holds the key schedule: the eight 32-bit key words taken
// little-endian from the 256-bit key. Rounds index them modulo 8, so no
// further expansion is needed.
type beltCipher struct {
	ks [8]uint32
}

// NewCipher creates and returns a new cipher.Block computing BelT
// encryption and decryption under the given 256-bit key.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	bc := new(beltCipher)
	for i := range bc.ks {
		bc.ks[i] = binary.LittleEndian.Uint32(key[4*i:])
	}

	return bc, nil
}

func (bc *beltCipher) BlockSize() int { return BlockSize }

func (bc *beltCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("beltblock: input not full block")
	}
	if len(dst) < BlockSize {
		panic("beltblock: output not full block")
	}
	encryptBlock(&bc.ks, dst, src)
}

func (bc *beltCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("beltblock: input not full block")
	}
	if len(dst) < BlockSize {
		panic("beltblock: output not full block")
	}
	decryptBlock(&bc.ks, dst, src)
}

// encryptBlock computes the STB 34.101.31 section 6.1.3 transform.
// Words are little-endian; the 1-based round key word k[m] lives at
// ks[(m-1)%8], with m running 7i-6 .. 7i in round i.
func encryptBlock(ks *[8]uint32, dst, src []byte) {
	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	c := binary.LittleEndian.Uint32(src[8:12])
	d := binary.LittleEndian.Uint32(src[12:16])

	for i := uint32(1); i <= 8; i++ {
		j := 7 * i
		b ^= g5(a + ks[(j-7)%8])
		c ^= g21(d + ks[(j-6)%8])
		a -= g13(b + ks[(j-5)%8])
		e := g21(b+c+ks[(j-4)%8]) ^ i
		b += e
		c -= e
		d += g13(c + ks[(j-3)%8])
		b ^= g21(a + ks[(j-2)%8])
		c ^= g5(d + ks[(j-1)%8])
		a, b = b, a
		c, d = d, c
		b, c = c, b
	}

	binary.LittleEndian.PutUint32(dst[0:4], b)
	binary.LittleEndian.PutUint32(dst[4:8], d)
	binary.LittleEndian.PutUint32(dst[8:12], a)
	binary.LittleEndian.PutUint32(dst[12:16], c)
}

// decryptBlock computes the STB 34.101.31 section 6.1.4 transform, walking
// the round key words in reverse: k[7i] .. k[7i-6] for i = 8 .. 1.
func decryptBlock(ks *[8]uint32, dst, src []byte) {
	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	c := binary.LittleEndian.Uint32(src[8:12])
	d := binary.LittleEndian.Uint32(src[12:16])

	for i := uint32(8); i >= 1; i-- {
		j := 7 * i
		b ^= g5(a + ks[(j-1)%8])
		c ^= g21(d + ks[(j-2)%8])
		a -= g13(b + ks[(j-3)%8])
		e := g21(b+c+ks[(j-4)%8]) ^ i
		b += e
		c -= e
		d += g13(c + ks[(j-5)%8])
		b ^= g21(a + ks[(j-6)%8])
		c ^= g5(d + ks[(j-7)%8])
		a, b = b, a
		c, d = d, c
		a, d = d, a
	}

	binary.LittleEndian.PutUint32(dst[0:4], c)
	binary.LittleEndian.PutUint32(dst[4:8], a)
	binary.LittleEndian.PutUint32(dst[8:12], d)
	binary.LittleEndian.PutUint32(dst[12:16], b)
}

// The G_r transform substitutes each byte of the word through the H box and
// rotates the result left by r bits. Splitting the rotation per byte lets
// each position use a precomputed table.
func g5(u uint32) uint32 {
	return h29[u>>24] ^ h21[u>>16&0xFF] ^ h13[u>>8&0xFF] ^ h5[u&0xFF]
}

func g13(u uint32) uint32 {
	return h5[u>>24] ^ h29[u>>16&0xFF] ^ h21[u>>8&0xFF] ^ h13[u&0xFF]
}

func g21(u uint32) uint32 {
	return h13[u>>24] ^ h5[u>>16&0xFF] ^ h29[u>>8&0xFF] ^ h21[u&0xFF]
}
