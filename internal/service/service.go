// Package service implements the wrap service: the engines built from the
// loaded KEK and the dispatch of wire commands to their handlers.
package service

import (
	"crypto/aes"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
	"github.com/andrei-cloud/go_keywrap/internal/message"
	"github.com/andrei-cloud/go_keywrap/internal/service/logic"
	"github.com/andrei-cloud/go_keywrap/pkg/beltkwp"
	"github.com/andrei-cloud/go_keywrap/pkg/keycheck"
	"github.com/andrei-cloud/go_keywrap/pkg/keywrap"
)

// Version is the service identity string returned by the NC command.
const Version = "0100-KW01"

// Service holds the wrap engines bound to the loaded KEK and answers wire
// commands. A Service is immutable after New and safe for concurrent use.
type Service struct {
	kek  *keywrap.Kek
	belt *beltkwp.Wrapper
	kcv  string
}

// New builds the service engines from raw KEK material. The AES engine
// accepts 16, 24 or 32 byte KEKs; the BelT engine additionally requires 32
// bytes and stays disabled otherwise. The material is expanded into key
// schedules and not retained, so the caller may wipe it once New returns.
func New(material []byte) (*Service, error) {
	kek, err := keywrap.NewKek(material)
	if err != nil {
		return nil, fmt.Errorf("aes engine init failed: %w", err)
	}

	s := &Service{kek: kek}

	if len(material) == beltkwp.KeySize {
		s.belt, err = beltkwp.New(material)
		if err != nil {
			return nil, fmt.Errorf("belt engine init failed: %w", err)
		}
	}

	block, err := aes.NewCipher(material)
	if err != nil {
		return nil, fmt.Errorf("kcv cipher init failed: %w", err)
	}
	kcv, err := keycheck.CheckValue(block)
	if err != nil {
		return nil, fmt.Errorf("kcv computation failed: %w", err)
	}
	s.kcv = strings.ToUpper(fmt.Sprintf("%x", kcv))

	return s, nil
}

// CheckValue returns the KEK check value as uppercase hex.
func (s *Service) CheckValue() string {
	return s.kcv
}

// HasBelt reports whether the BelT engine is available for the loaded KEK.
func (s *Service) HasBelt() bool {
	return s.belt != nil
}

// Execute parses and runs one wire command, returning the full response
// bytes. Failures come back as errorcodes.ServiceError values carrying the
// two-character wire status.
func (s *Service) Execute(cmd string, payload []byte) ([]byte, error) {
	m, err := message.Parse(cmd, payload)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("event", "command_dispatch").
		Str("command", m.CommandCode()).
		Str("message_id", m.ID()).
		Msg(m.Trace())

	switch m.CommandCode() {
	case "NC":
		return logic.ExecuteNC(s.kcv, Version)
	case "KW":
		return logic.ExecuteKW(m.Get(message.FieldKeyData), s.kek.WrapTo)
	case "KY":
		return logic.ExecuteKY(m.Get(message.FieldWrappedKey), s.kek.UnwrapTo)
	case "KP":
		return logic.ExecuteKP(m.Get(message.FieldKeyData), s.kek.WrapPaddedTo)
	case "KR":
		return logic.ExecuteKR(m.Get(message.FieldWrappedKey), s.kek.UnwrapPaddedTo)
	case "BW":
		if s.belt == nil {
			return nil, errorcodes.Err68
		}

		return logic.ExecuteBW(m.Get(message.FieldHeader), m.Get(message.FieldKeyData), s.belt.WrapTo)
	case "BY":
		if s.belt == nil {
			return nil, errorcodes.Err68
		}

		return logic.ExecuteBY(m.Get(message.FieldHeader), m.Get(message.FieldWrappedKey), s.belt.UnwrapTo)
	default:
		return nil, errorcodes.Err68
	}
}
