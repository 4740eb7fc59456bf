// Package beltkwp implements the BelT key wrapping algorithm (belt-kwp)
// from STB 34.101.31-2020 section 6.2.
//
// The algorithm protects key material under a 256-bit BelT KEK together
// with a public 16-byte header. Key data and header are enciphered as one
// unit by the belt-wblock wide-block transform, so every output bit
// depends on every input bit; unwrap recovers the trailing header and
// compares it against the caller's copy as the integrity check. Output is
// always 16 bytes longer than the key data.
//
// A Wrapper engine is built once per KEK and is safe for concurrent use.
// Every operation comes in an allocating form (Wrap) and a caller-buffer
// form (WrapTo) sharing the same core.
package beltkwp
