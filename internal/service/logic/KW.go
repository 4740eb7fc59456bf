package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// ExecuteKW processes the KW payload and returns response bytes: "KX00"
// followed by the AES-KW wrapped value in uppercase hex.
func ExecuteKW(input []byte, wrap WrapFunc) ([]byte, error) {
	data, err := decodeHex(input)
	if err != nil {
		return nil, err
	}
	defer pool.Put(data)

	out := pool.Get(keywrap.WrappedLen(len(data)))
	defer pool.Put(out)

	wrapped, err := wrap(data, out)
	if err != nil {
		log.Debug().
			Err(err).
			Str("event", "kw_wrap_error").
			Int("data_len", len(data)).
			Msg("aes-kw wrap failed")

		return nil, mapError(err)
	}

	return buildResponse("KX", wrapped), nil
}
