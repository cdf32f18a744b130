package api

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type Server struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewServer(address string, handler http.Handler, readTimeout, writeTimeout,
	shutdownTimeout time.Duration) *Server {

	return &Server{
		server: &http.Server{
			Addr:         address,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", s.server.Addr)
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "http server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	log.Info("HTTP server stopped")
	return nil
}
