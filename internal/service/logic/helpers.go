// Package logic implements the wrap service commands. Each handler takes
// the ASCII payload fields of one command plus the engine operation it
// drives, and returns the full response bytes including the response code
// and status.
package logic

import (
	"encoding/hex"
	"errors"

	"github.com/andrei-cloud/go_keywrap/internal/bufpool"
	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
	"github.com/andrei-cloud/go_keywrap/pkg/beltkwp"
	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// WrapFunc applies or reverses an AES wrap algorithm over raw bytes,
// writing into dst and returning the slice carrying the result.
type WrapFunc func(data, dst []byte) ([]byte, error)

// BeltFunc is WrapFunc with the BelT public header threaded through.
type BeltFunc func(data, header, dst []byte) ([]byte, error)

// pool serves the decode and engine scratch of the hot path. Buffers are
// zeroed on return, so recovered key material does not outlive a command.
var pool = bufpool.New()

// PrewarmPool seeds the scratch pool before traffic arrives.
func PrewarmPool(count int) {
	pool.Prewarm(count)
}

// PoolStats exposes the scratch pool counters for shutdown reporting.
func PoolStats() map[string]any {
	return pool.Stats()
}

// decodeHex decodes protocol hex into a pooled buffer. The caller owns
// the buffer and must hand it back with pool.Put.
func decodeHex(src []byte) ([]byte, error) {
	if len(src) == 0 || len(src)%2 != 0 {
		return nil, errorcodes.Err15
	}

	dst := pool.Get(hex.DecodedLen(len(src)))
	if _, err := hex.Decode(dst, src); err != nil {
		pool.Put(dst)

		return nil, errorcodes.Err15
	}

	return dst, nil
}

// appendHexUpper appends raw as uppercase hex to dst.
func appendHexUpper(dst, raw []byte) []byte {
	const digits = "0123456789ABCDEF"
	for _, b := range raw {
		dst = append(dst, digits[b>>4], digits[b&0x0F])
	}

	return dst
}

// buildResponse assembles a response code, the "00" status and the result
// rendered as uppercase hex.
func buildResponse(code string, result []byte) []byte {
	resp := make([]byte, 0, len(code)+2+2*len(result))
	resp = append(resp, code...)
	resp = append(resp, "00"...)

	return appendHexUpper(resp, result)
}

// mapError folds engine failures into wire status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, keywrap.ErrInvalidDataLength),
		errors.Is(err, beltkwp.ErrInvalidDataLength):
		return errorcodes.Err27
	case errors.Is(err, beltkwp.ErrInvalidHeaderLength):
		return errorcodes.Err33
	case errors.Is(err, keywrap.ErrIntegrityCheckFailed),
		errors.Is(err, beltkwp.ErrIntegrityCheckFailed):
		return errorcodes.ErrA4
	default:
		return errorcodes.Err41
	}
}
