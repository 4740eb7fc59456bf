// Package keycheck computes key check values for 128-bit block ciphers
// using CMAC (RFC 4493 / NIST SP 800-38B). A check value is a short,
// non-secret fingerprint of a key that two parties compare out of band to
// confirm they hold the same key without revealing it.
package keycheck

import (
	"crypto/cipher"
	"errors"
)

const blockSize = 16

// CheckValueLen is the number of CMAC bytes exposed as the check value.
const CheckValueLen = 3

// ErrUnsupportedBlockSize reports a cipher whose block size is not 16
// bytes. The subkey constant used here is specific to 128-bit blocks.
var ErrUnsupportedBlockSize = errors.New("cipher block size must be 16 bytes")

// CMAC computes the full 16-byte CMAC of data under block. It works with
// any 128-bit block cipher, so AES and BelT keys get their check values
// from the same construction.
func CMAC(block cipher.Block, data []byte) ([]byte, error) {
	if block.BlockSize() != blockSize {
		return nil, ErrUnsupportedBlockSize
	}

	// Subkeys per RFC 4493 section 2.3: L = E(0^128), K1 = L*2, K2 = L*4.
	l := make([]byte, blockSize)
	block.Encrypt(l, l)
	k1 := subkeyShift(l)
	k2 := subkeyShift(k1)

	// Split off the final block. A complete final block is masked with
	// K1; a short or absent one is padded with 0x80 00.. and masked
	// with K2.
	var last [blockSize]byte
	head := data
	switch {
	case len(data) == 0:
		last[0] = 0x80
		xorInto(last[:], k2)
	case len(data)%blockSize == 0:
		head = data[:len(data)-blockSize]
		copy(last[:], data[len(head):])
		xorInto(last[:], k1)
	default:
		rem := len(data) % blockSize
		head = data[:len(data)-rem]
		copy(last[:], data[len(head):])
		last[rem] = 0x80
		xorInto(last[:], k2)
	}

	// CBC-MAC over the leading blocks with a zero IV, then the masked
	// final block.
	mac := make([]byte, blockSize)
	for i := 0; i < len(head); i += blockSize {
		xorInto(mac, head[i:i+blockSize])
		block.Encrypt(mac, mac)
	}

	xorInto(mac, last[:])
	block.Encrypt(mac, mac)

	return mac, nil
}

// CheckValue returns the check value of the cipher's key: the leading
// three bytes of the CMAC over a single all-zero block.
func CheckValue(block cipher.Block) ([]byte, error) {
	mac, err := CMAC(block, make([]byte, blockSize))
	if err != nil {
		return nil, err
	}

	return mac[:CheckValueLen], nil
}

// subkeyShift doubles b in GF(2^128): shift left one bit and fold the
// carry back in with the field constant Rb.
func subkeyShift(b []byte) []byte {
	const rb = 0x87
	out := make([]byte, len(b))
	carry := byte(0)

	for i := len(b) - 1; i >= 0; i-- {
		out[i] = b[i]<<1 | carry
		carry = b[i] >> 7
	}

	if b[0]&0x80 != 0 {
		out[len(out)-1] ^= rb
	}

	return out
}

// xorInto XORs src into dst in place.
func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
