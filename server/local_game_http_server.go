package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"localgame-server/logging"
)

type LocalGameHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	address         string
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

func NewLocalGameHttpServer(router *Router, muxRouter *mux.Router, address string, shutdownTimeout time.Duration, logger *zap.Logger) *LocalGameHttpServer {
	return &LocalGameHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          logging.Component(logger, "LocalGameHttpServer"),
	}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *LocalGameHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("address", s.address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.address, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("server exiting")
	return nil
}
