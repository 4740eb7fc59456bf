package message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field names used by the wrap command parsers.
const (
	FieldHeader     = "Header"
	FieldKeyData    = "Key Data"
	FieldWrappedKey = "Wrapped Key"
)

// Message defines the interface for wrap service messages.
type Message interface {
	Get(field string) []byte
	Set(field string, val []byte)
	CommandCode() string
	ID() string
	Trace() string
}

// BaseMessage implements Message and holds command fields keyed by name.
// Every parsed message carries a unique ID for request correlation in
// logs.
type BaseMessage struct {
	id          string
	cmdCode     string
	description string
	Fields      map[string][]byte
}

// NewBaseMessage creates a new BaseMessage with the given code and
// description.
func NewBaseMessage(cmdCode, description string) *BaseMessage {
	return &BaseMessage{
		id:          uuid.NewString(),
		cmdCode:     cmdCode,
		description: description,
		Fields:      make(map[string][]byte),
	}
}

func (m *BaseMessage) Get(field string) []byte {
	return m.Fields[field]
}

func (m *BaseMessage) Set(field string, val []byte) {
	m.Fields[field] = val
}

func (m *BaseMessage) CommandCode() string {
	return m.cmdCode
}

// ID returns the correlation identifier assigned when the message was
// parsed.
func (m *BaseMessage) ID() string {
	return m.id
}

// Trace renders the command and its fields for debug logging. Field
// values are protocol text, already hex, so they print as is.
func (m *BaseMessage) Trace() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command %s (%s)\n", m.cmdCode, m.description)
	for k, v := range m.Fields {
		fmt.Fprintf(&b, "\t[%s]=%s\n", k, v)
	}

	return b.String()
}
