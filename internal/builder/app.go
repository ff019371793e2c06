package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disckocrip/retro-backend/internal/session"
	"github.com/disckocrip/retro-backend/internal/store"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server     *http.Server
	controller *session.Controller
	medium     *store.SQLiteMedium
	logger     *zap.Logger
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// shutdown drains in-flight requests, flushes the session so a pending
// debounced save is not lost, and closes the store.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.logger.Info("Flushing session state")
	a.controller.Flush(ctx)
	a.controller.Close()

	a.logger.Info("Closing snapshot store")
	if cerr := a.medium.Close(); cerr != nil {
		a.logger.Error("Store close error", zap.Error(cerr))
		if err == nil {
			err = cerr
		}
	}

	if err == nil {
		a.logger.Info("Application stopped gracefully")
	}
	return err
}
