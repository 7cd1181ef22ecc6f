package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"GridSense/pkg/cache"
	"GridSense/pkg/config"
	xhttp "GridSense/pkg/http"
	"GridSense/pkg/logger"
)

// App owns the process lifecycle: it starts the HTTP server, waits for a
// termination signal and shuts everything down in order.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	handler xhttp.Handler
	cache   cache.Service
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		handler: handler,
		cache:   cacheSvc,
	}
}

// Run starts the application and blocks until shutdown completes.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	srv := xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := srv.Start(); err != nil {
		return err
	}
	a.log.Info("service online",
		logger.Int("port", a.cfg.Server.Port),
		logger.String("environment", a.cfg.Environment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutting down", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		a.log.Error("http server shutdown failed", logger.Error(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Error("cache close failed", logger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
