package infra

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPServer runs the storefront API with the timeouts from Config and a
// graceful shutdown path.
type HTTPServer struct {
	srv    *http.Server
	logger Logger
}

// NewHTTPServer builds the server around the session router.
func NewHTTPServer(cfg *Config, logger Logger, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.HTTPReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.HTTPWriteTimeout,
			IdleTimeout:       cfg.HTTPIdleTimeout,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. A shutdown-initiated close is not an error.
func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("storefront api listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
