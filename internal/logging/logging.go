// Package logging configures the process-wide zerolog logger and provides
// the wrap service's request and response log helpers.
package logging

import (
	"encoding/hex"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
func InitLogger(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano                 // always initialize base logger with timestamp.
	base := zerolog.New(os.Stdout).With().Timestamp().Logger() // initialize base logger.
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}) // select output format.
	} else {
		log.Logger = base // use JSON logger.
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel) // set debug level.
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel) // set info level.
	}
}

// LogRequest logs a received command with structured fields.
func LogRequest(clientIP, command string, payload []byte, activeConns int) {
	log.Info().
		Str("event", "request_received").
		Str("client_ip", clientIP).
		Str("command", command).
		Str("request", formatWire(payload)).
		Int("active_connections", activeConns).
		Msg("received command")
}

// LogResponse logs a sent response with structured fields. The response
// includes its leading code and status characters.
func LogResponse(clientIP, command string, response []byte, status string, activeConns int) {
	log.Info().
		Str("event", "response_sent").
		Str("client_ip", clientIP).
		Str("command", command).
		Str("response", formatWire(response)).
		Str("status", status).
		Int("active_connections", activeConns).
		Msg("sent response")
}

// formatWire renders protocol bytes for logs: as-is when printable ASCII,
// hex otherwise. Protocol traffic is ASCII by construction, so the hex
// path only fires on garbage input worth seeing raw.
func formatWire(data []byte) string {
	for _, b := range data {
		if b < 32 || b > 126 {
			return hex.EncodeToString(data)
		}
	}

	return string(data)
}
