package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pactproof/backend/internal/api"
	"github.com/pactproof/backend/internal/domain/reconciler"
	"github.com/pactproof/backend/internal/extraction"
	"github.com/pactproof/backend/internal/infrastructure/config"
	"github.com/pactproof/backend/internal/infrastructure/logging"
	"github.com/pactproof/backend/internal/infrastructure/metrics"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

// RunServe runs the API server until it receives a shutdown signal.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	// Set up logging
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	// Initialize storage
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	extractor := extraction.NewCachingExtractor(
		extraction.NewExtractor(cfg.Extraction.Mode, cfg.Extraction.APIKey, cfg.Extraction.BaseURL, logger),
		logger,
	)

	engine := reconciler.NewEngine(reconciler.Config{
		FuzzyThreshold:     cfg.Reconcile.FuzzyThreshold,
		AllowedVariancePct: cfg.Reconcile.AllowedVariancePct,
	})

	port := cfg.Server.Port
	if flags.Port != 0 {
		port = flags.Port
	}

	apiCfg := api.Config{
		Port:            port,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		APIOrigin:       cfg.Server.APIOrigin,
		AppMode:         cfg.Extraction.Mode,
		UploadDir:       cfg.Storage.UploadDir,
		MaxUploadSizeMB: cfg.Storage.MaxUploadSizeMB,
	}

	server := api.NewServer(apiCfg, store, extractor, engine, metrics.New(), logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
