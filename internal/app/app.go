// Package app wires the console's clients and controllers together and
// owns the process lifecycle.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/openhaul/dispatch/internal/controllers/restserver"
	"github.com/openhaul/dispatch/internal/geocode"
	"github.com/openhaul/dispatch/internal/log"
	"github.com/openhaul/dispatch/internal/planner"
	"github.com/openhaul/dispatch/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	plannerClient, err := planner.NewClient(cfg.Planner, a.logger)
	if err != nil {
		return err
	}
	geocoderClient := geocode.NewClient(cfg.Geocoder, a.logger)

	restController, err := restserver.NewController(ctx, &wg, cfg.REST, plannerClient, geocoderClient, a.logger)
	if err != nil {
		return err
	}
	if err := restController.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
