package beltkwp

import (
	"crypto/cipher"
	"encoding/binary"
)

// wblockEncrypt runs the belt-wblock transform of STB 34.101.31 section
// 6.2.3 in place over x, which must be a multiple of 16 bytes and at
// least 32 bytes long. Each of the 2n steps folds all blocks but the last
// into s, shifts the buffer one block left, mixes E(s) and the step
// counter into the tail block and appends s.
func wblockEncrypt(block cipher.Block, x []byte) {
	n := len(x) / BlockSize
	var s, e [BlockSize]byte
	var ctr [8]byte

	for i := 1; i <= 2*n; i++ {
		copy(s[:], x[:BlockSize])
		for j := 1; j < n-1; j++ {
			xorBlock(s[:], x[j*BlockSize:(j+1)*BlockSize])
		}

		// Shift left one block; the stale tail copy is overwritten below.
		copy(x, x[BlockSize:])

		block.Encrypt(e[:], s[:])
		t := x[(n-2)*BlockSize : (n-1)*BlockSize]
		xorBlock(t, e[:])

		// The step counter is a 128-bit little-endian value whose high
		// half is always zero, so only eight bytes take part.
		binary.LittleEndian.PutUint64(ctr[:], uint64(i))
		xorBlock(t[:8], ctr[:])

		copy(x[(n-1)*BlockSize:], s[:])
	}
}

// wblockDecrypt runs the inverse transform of STB 34.101.31 section 6.2.4
// in place over x, stepping the counter from 2n down to 1.
func wblockDecrypt(block cipher.Block, x []byte) {
	n := len(x) / BlockSize
	var s, e [BlockSize]byte
	var ctr [8]byte

	for i := 2 * n; i >= 1; i-- {
		// Shift right one block, moving the tail block s to the front.
		copy(s[:], x[(n-1)*BlockSize:])
		copy(x[BlockSize:], x[:(n-1)*BlockSize])
		copy(x[:BlockSize], s[:])

		block.Encrypt(e[:], s[:])
		t := x[(n-1)*BlockSize:]
		xorBlock(t, e[:])

		binary.LittleEndian.PutUint64(ctr[:], uint64(i))
		xorBlock(t[:8], ctr[:])

		// Restore the head block from the running XOR of the others.
		for j := 1; j < n-1; j++ {
			xorBlock(x[:BlockSize], x[j*BlockSize:(j+1)*BlockSize])
		}
	}
}

// xorBlock XORs src into dst in place.
func xorBlock(dst, src []byte) {
	for i := range src {
		dst[i] ^= src[i]
	}
}
