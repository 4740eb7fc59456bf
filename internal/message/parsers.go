package message

import (
	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
)

// headerHexLen is the wire length of a BelT wrap header: 16 bytes as hex.
const headerHexLen = 32

// Parse builds the message for a two-character command code and its
// payload. Unknown codes map to Err68 and structurally short payloads to
// Err15.
func Parse(cmd string, payload []byte) (*BaseMessage, error) {
	switch cmd {
	case "NC":
		return NewNC(payload), nil
	case "KW":
		return NewKW(payload)
	case "KY":
		return NewKY(payload)
	case "KP":
		return NewKP(payload)
	case "KR":
		return NewKR(payload)
	case "BW":
		return NewBW(payload)
	case "BY":
		return NewBY(payload)
	default:
		return nil, errorcodes.Err68
	}
}

// NewNC parses an NC Diagnostics command. It carries no payload.
func NewNC(_ []byte) *BaseMessage {
	return NewBaseMessage("NC", "Diagnostics and status")
}

// NewKW parses a KW Wrap Key (AES-KW) command from payload data.
func NewKW(data []byte) (*BaseMessage, error) {
	if len(data) == 0 {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("KW", "Wrap key data with AES-KW")
	m.Fields[FieldKeyData] = data

	return m, nil
}

// NewKY parses a KY Unwrap Key (AES-KW) command from payload data.
func NewKY(data []byte) (*BaseMessage, error) {
	if len(data) == 0 {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("KY", "Unwrap key data with AES-KW")
	m.Fields[FieldWrappedKey] = data

	return m, nil
}

// NewKP parses a KP Wrap Key (AES-KWP) command from payload data.
func NewKP(data []byte) (*BaseMessage, error) {
	if len(data) == 0 {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("KP", "Wrap key data with AES-KWP")
	m.Fields[FieldKeyData] = data

	return m, nil
}

// NewKR parses a KR Unwrap Key (AES-KWP) command from payload data.
func NewKR(data []byte) (*BaseMessage, error) {
	if len(data) == 0 {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("KR", "Unwrap key data with AES-KWP")
	m.Fields[FieldWrappedKey] = data

	return m, nil
}

// NewBW parses a BW Wrap Key (BelT-KWP) command from payload data: a
// 32-character header followed by the key data.
func NewBW(data []byte) (*BaseMessage, error) {
	if len(data) <= headerHexLen {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("BW", "Wrap key data with BelT-KWP")
	m.Fields[FieldHeader], data = data[:headerHexLen], data[headerHexLen:]
	m.Fields[FieldKeyData] = data

	return m, nil
}

// NewBY parses a BY Unwrap Key (BelT-KWP) command from payload data: a
// 32-character header followed by the wrapped value.
func NewBY(data []byte) (*BaseMessage, error) {
	if len(data) <= headerHexLen {
		return nil, errorcodes.Err15
	}

	m := NewBaseMessage("BY", "Unwrap key data with BelT-KWP")
	m.Fields[FieldHeader], data = data[:headerHexLen], data[headerHexLen:]
	m.Fields[FieldWrappedKey] = data

	return m, nil
}
