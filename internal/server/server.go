package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redletters/rlauth/auth"
)

// maxRequestBytes bounds PUT bodies; a token is well below this.
const maxRequestBytes = 4 << 10

// TokenService is the command surface served over HTTP.
type TokenService interface {
	ResolveToken(ctx context.Context) (auth.StoredAuthToken, error)
	StoreToken(ctx context.Context, candidate string) error
	DeleteToken(ctx context.Context) error
}

// Server exposes get/set/delete of the auth token as a loopback JSON API for the
// desktop UI layer.
type Server struct {
	handler http.Handler
	server  *http.Server
}

// Compile-time check that Server implements http.Handler
var _ http.Handler = (*Server)(nil)

// New creates a Server dispatching to svc.
// Only an untyped nil svc is rejected; a nil pointer wrapped in the interface is not detected.
func New(svc TokenService) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("missing token service")
	}

	h := &handlers{svc: svc}
	logger := slog.Default()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/auth/token", h.getToken)
	mux.HandleFunc("PUT /v1/auth/token", h.setToken)
	mux.HandleFunc("DELETE /v1/auth/token", h.deleteToken)

	return &Server{
		handler: applyMiddlewares(mux,
			Logging(logger),
			RequestID,
			Recovery,
		),
	}, nil
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Start starts the HTTP server in the background and returns immediately.
// Returns a channel for runtime errors and a startup error if any.
//
// Startup errors (port in use, permission denied) are returned immediately.
// Runtime errors (network failures during operation) are sent to the error channel.
//
// The caller is responsible for calling Shutdown() to stop the server.
func (s *Server) Start(ctx context.Context, address string) (<-chan error, error) {
	// Create listener synchronously to catch port-in-use errors immediately
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second, // All operations are local keyring/file calls
		IdleTimeout:       90 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)

	go func() {
		err := s.server.Serve(listener)
		// Only report error if not from graceful shutdown
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh, nil
}

// Shutdown performs graceful shutdown of the HTTP server.
// Returns error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	if err := s.server.Shutdown(ctx); err != nil {
		// Graceful shutdown failed - force close
		_ = s.server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
