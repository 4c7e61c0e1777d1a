package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type HTTPServer struct {
	address string
	logger  logging.Logger
	srv     *http.Server
}

func NewHTTPServer(a string, l logging.Logger, users UserService, export ExportService) *HTTPServer {
	logger := l.With("module", "http_server")
	router := NewRouter(NewHandler(users, export, logger), logger)

	return &HTTPServer{
		address: a,
		logger:  logger,
		srv: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

// serve blocks until the listener fails or ctx is cancelled. After
// cancellation it returns only once in-flight requests have drained.
func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	stopped := make(chan struct{})
	serveDone := make(chan struct{})
	defer close(serveDone)

	go func() {
		defer close(stopped)

		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
