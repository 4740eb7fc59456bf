package logic

import (
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// ExecuteKP processes the KP payload and returns response bytes: "KQ00"
// followed by the AES-KWP wrapped value in uppercase hex.
func ExecuteKP(input []byte, wrap WrapFunc) ([]byte, error) {
	data, err := decodeHex(input)
	if err != nil {
		return nil, err
	}
	defer pool.Put(data)

	out := pool.Get(keywrap.PaddedWrappedLen(len(data)))
	defer pool.Put(out)

	wrapped, err := wrap(data, out)
	if err != nil {
		log.Debug().
			Err(err).
			Str("event", "kp_wrap_error").
			Int("data_len", len(data)).
			Msg("aes-kwp wrap failed")

		return nil, mapError(err)
	}

	return buildResponse("KQ", wrapped), nil
}
