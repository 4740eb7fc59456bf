package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// ExecuteKY processes the KY payload and returns response bytes: "KZ00"
// followed by the AES-KW recovered key data in uppercase hex.
func ExecuteKY(input []byte, unwrap WrapFunc) ([]byte, error) {
	wrapped, err := decodeHex(input)
	if err != nil {
		return nil, err
	}
	defer pool.Put(wrapped)

	out := pool.Get(max(len(wrapped)-keywrap.SemiblockSize, 0))
	defer pool.Put(out)

	data, err := unwrap(wrapped, out)
	if err != nil {
		log.Debug().
			Err(err).
			Str("event", "ky_unwrap_error").
			Int("wrapped_len", len(wrapped)).
			Msg("aes-kw unwrap failed")

		return nil, mapError(err)
	}

	return buildResponse("KZ", data), nil
}
