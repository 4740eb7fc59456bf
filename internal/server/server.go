// Package server runs the TCP wrap service: length-framed anet
// connections carrying two-character commands with ASCII hex payloads.
package server

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
	"github.com/andrei-cloud/go_keywrap/internal/logging"
	"github.com/andrei-cloud/go_keywrap/internal/service"
)

// logAdapter implements anet.Logger using zerolog.
type logAdapter struct{}

// Server wraps the anet TCP server and the wrap service dispatch.
type Server struct {
	address     string
	srv         *anetserver.Server
	svc         *service.Service
	activeConns int32
}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// NewServer configures and returns the wrap server instance.
func NewServer(address string, svc *service.Service) (*Server, error) {
	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{
		address: address,
		svc:     svc,
	}
	handler := anetserver.HandlerFunc(s.handle)
	srv, err := anetserver.NewServer(address, handler, cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	log.Info().
		Str("address", s.address).
		Str("kcv", s.svc.CheckValue()).
		Bool("belt_enabled", s.svc.HasBelt()).
		Msg("server started")

	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// incrementCode returns the response code for cmd: the second character
// incremented, wrapping Z to A.
func incrementCode(cmd string) string {
	b := []byte(cmd)
	if len(b) < 2 {
		return cmd
	}
	if b[1] == 'Z' {
		b[1] = 'A'
	} else {
		b[1]++
	}

	return string(b)
}

// errorResponse builds the wire error reply for cmd: the response code
// followed by the service error's status. Failures that are not
// ServiceError values fold into the internal error status.
func errorResponse(cmd string, err error) ([]byte, errorcodes.ServiceError) {
	svcErr := errorcodes.Err41
	var se errorcodes.ServiceError
	if errors.As(err, &se) {
		svcErr = se
	}

	return []byte(incrementCode(cmd) + svcErr.CodeOnly()), svcErr
}

// handle serves one framed request and always answers with a protocol
// frame; only a structurally unusable request closes the connection.
func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	atomic.AddInt32(&s.activeConns, 1)
	defer atomic.AddInt32(&s.activeConns, -1)

	start := time.Now()
	log.Debug().
		Str("event", "handle_start").
		Str("client_ip", client).
		Msg("starting request handling")

	if len(data) < 2 {
		log.Error().Str("client_ip", client).Msg("malformed request")

		return nil, errors.New("malformed request")
	}

	cmd := string(data[:2])
	active := int(atomic.LoadInt32(&s.activeConns))
	logging.LogRequest(client, cmd, data[2:], active)

	resp, execErr := s.svc.Execute(cmd, data[2:])
	status := errorcodes.Err00
	if execErr != nil {
		resp, status = errorResponse(cmd, execErr)
		log.Warn().
			Str("event", "command_failed").
			Str("client_ip", client).
			Str("command", cmd).
			Str("status", status.CodeOnly()).
			Err(execErr).
			Msg("command failed")
	}

	logging.LogResponse(client, cmd, resp, status.CodeOnly(), active)

	log.Debug().
		Str("event", "handle_done").
		Str("command", cmd).
		Str("duration", time.Since(start).String()).
		Msg("completed request handling")

	return resp, nil
}
