package server

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/joblane/backend/config"
)

// Closer is a shutdown hook run during graceful shutdown, after the
// HTTP listener stops accepting. Database pools register here.
type Closer func(ctx context.Context) error

type Server struct {
	cfg     config.Server
	handler http.Handler
	logger  *slog.Logger
	closers []Closer
}

func NewServer(cfg config.Server, handler http.Handler, logger *slog.Logger, closers ...Closer) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		closers: closers,
	}
}

// Run serves until a shutdown signal or listener error, then drains
// in-flight requests and runs the registered closers within the
// configured shutdown timeout.
func (s *Server) Run() error {
	s.logger.Info("server configuration",
		"addr", s.cfg.Addr,
		"read_timeout", s.cfg.ReadTimeout.Duration,
		"read_header_timeout", s.cfg.ReadHeaderTimeout.Duration,
		"write_timeout", s.cfg.WriteTimeout.Duration,
		"idle_timeout", s.cfg.IdleTimeout.Duration,
		"shutdown_timeout", s.cfg.ShutdownTimeout.Duration,
	)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       s.cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("received shutdown signal - gracefully shutting down")
	case err := <-serverError:
		s.logger.Error("server error - initiating shutdown", "err", err)
		runErr = err
	}
	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)

	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	for _, closer := range s.closers {
		closer := closer
		shutdownGroup.Go(func() error {
			return closer(gracefulCtx)
		})
	}

	if err := shutdownGroup.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	s.logger.Info("shutdown complete")
	return runErr
}
