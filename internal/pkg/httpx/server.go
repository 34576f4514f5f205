package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"coursemanagement/internal/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Name    string
	Addr    string
	Handler http.Handler
	L       logger.Logger
}

// Start serves until ctx is cancelled, then drains in-flight requests.
// There is no write timeout because the API streams server-sent events.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.L.Info("starting server", logger.String("name", s.Name), logger.String("addr", ln.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.L.Info("shutting down server", logger.String("name", s.Name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
