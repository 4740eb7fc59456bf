// Package keywrap implements the AES Key Wrap (KW, RFC 3394) and AES Key
// Wrap with Padding (KWP, RFC 5649) algorithms from NIST SP 800-38F.
//
// Both algorithms protect key material under a Key-Encrypting-Key (KEK) and
// authenticate it through a fixed integrity value recovered on unwrap, so no
// separate MAC travels with the ciphertext. KW requires semiblock-aligned
// input of at least 16 bytes; KWP accepts any length from 1 to 2^32-1 bytes
// and carries the true length in its alternative initial value.
//
// A Kek engine is built once per KEK and is safe for concurrent use. Every
// operation comes in an allocating form (Wrap) and a caller-buffer form
// (WrapTo) sharing the same core, so hot paths can run without allocation.
package keywrap
