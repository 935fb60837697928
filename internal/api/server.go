package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"sentinel-dca-go/internal/api/handler"
	"sentinel-dca-go/internal/api/handler/router"
	"sentinel-dca-go/internal/api/middleware"
	"sentinel-dca-go/internal/auth"
	"sentinel-dca-go/internal/config"
	"sentinel-dca-go/internal/logger"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, service handler.DashboardService, authenticator auth.Authenticator) *Server {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Dashboard(service)...),
		router.WithRoutes(handler.Cases(service, cfg.Cases.PageSize)...),
		router.WithRoutes(handler.Dataset(service)...),
	)
	rt.NotFound(handler.NotFound())

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logger.Component("api")
	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		log.WithError(err).Error("server failed")
		return err
	case <-done:
		log.Info("interrupt received")
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.WithField("timeout", shutdownTimeout.String()).Info("shutting down")
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
		return err
	}
	log.Info("server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
