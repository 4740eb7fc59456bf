package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
	"github.com/andrei-cloud/go_keywrap/pkg/beltkwp"
)

// ExecuteBW processes the BW payload and returns response bytes: "BX00"
// followed by the BelT-KWP wrapped value in uppercase hex.
func ExecuteBW(header, input []byte, wrap BeltFunc) ([]byte, error) {
	hdr, err := decodeHex(header)
	if err != nil {
		return nil, errorcodes.Err33
	}
	defer pool.Put(hdr)

	data, err := decodeHex(input)
	if err != nil {
		return nil, err
	}
	defer pool.Put(data)

	out := pool.Get(beltkwp.WrappedLen(len(data)))
	defer pool.Put(out)

	wrapped, err := wrap(data, hdr, out)
	if err != nil {
		log.Debug().
			Err(err).
			Str("event", "bw_wrap_error").
			Int("data_len", len(data)).
			Msg("belt-kwp wrap failed")

		return nil, mapError(err)
	}

	return buildResponse("BX", wrapped), nil
}
