// Package httpapi serves the consultation REST API from the in-memory store.
// Routes, status codes and error bodies follow the contract the client
// expects: {"detail": ...} for auth and lookup failures, OAuth
// {"error", "error_description"} from the token endpoint and per-field
// message lists for validation failures.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/apistub/store"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address      string
	logger       logging.Logger
	store        *store.Store
	jwtSecret    []byte
	tokenTTL     time.Duration
	clientID     string
	clientSecret string
}

type Option func(*Server)

// WithClient restricts the token endpoint to one OAuth client. Without it
// any client_id and client_secret are accepted.
func WithClient(id, secret string) Option {
	return func(s *Server) {
		s.clientID = id
		s.clientSecret = secret
	}
}

func NewServer(address string, l logging.Logger, st *store.Store, secretKey string, ttl time.Duration, opts ...Option) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		store:     st,
		jwtSecret: []byte(secretKey),
		tokenTTL:  ttl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
