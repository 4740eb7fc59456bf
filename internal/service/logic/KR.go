package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// ExecuteKR processes the KR payload and returns response bytes: "KS00"
// followed by the AES-KWP recovered key data in uppercase hex, truncated
// to the true length carried in the wrapped value.
func ExecuteKR(input []byte, unwrap WrapFunc) ([]byte, error) {
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
			Str("event", "kr_unwrap_error").
			Int("wrapped_len", len(wrapped)).
			Msg("aes-kwp unwrap failed")

		return nil, mapError(err)
	}

	return buildResponse("KS", data), nil
}
