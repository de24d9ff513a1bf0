package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/internal/config"
)

// Run wires the service, serves HTTP and blocks until SIGINT or SIGTERM,
// then drains in-flight requests within cfg.ShutdownTimeout.
func Run(cfg *config.Config, logger *slog.Logger) error {
	gin.SetMode(cfg.GinMode)

	container, err := NewContainer(cfg, WithLogger(logger))
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	janitor := NewJanitor(container.OTPRepo, container.SessionRepo, container.Clock, cfg.JanitorInterval, logger)
	janitor.Start(ctx)
	defer janitor.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      container.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "rate_limit", container.RateLimiter != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
