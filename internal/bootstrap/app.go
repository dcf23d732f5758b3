package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/faqbot/internal/infra/config"
)

// Worker is a background loop that runs alongside the HTTP server.
type Worker interface {
	Run(ctx context.Context) error
}

// App encapsulates the HTTP server lifecycle and its background workers.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	workers []Worker
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, workers []Worker) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, workers: workers}
}

// Run starts the HTTP server and workers and blocks until shutdown. A worker
// failure stops the whole app.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(a.workers)+1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	var wg sync.WaitGroup
	for _, w := range a.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}(w)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("component stopped", "error", err)
			runErr = err
		}
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	wg.Wait()
	return runErr
}
