package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
)

// ExecuteBY processes the BY payload and returns response bytes: "BZ00"
// followed by the BelT-KWP recovered key data in uppercase hex.
func ExecuteBY(header, input []byte, unwrap BeltFunc) ([]byte, error) {
	hdr, err := decodeHex(header)
	if err != nil {
		return nil, errorcodes.Err33
	}
	defer pool.Put(hdr)

	wrapped, err := decodeHex(input)
	if err != nil {
		return nil, err
	}
	defer pool.Put(wrapped)

	// The belt-wblock inverse runs in place, so the destination holds the
	// whole wrapped value, not just the recovered data.
	out := pool.Get(len(wrapped))
	defer pool.Put(out)

	data, err := unwrap(wrapped, hdr, out)
	if err != nil {
		log.Debug().
			Err(err).
			Str("event", "by_unwrap_error").
			Int("wrapped_len", len(wrapped)).
			Msg("belt-kwp unwrap failed")

		return nil, mapError(err)
	}

	return buildResponse("BZ", data), nil
}
