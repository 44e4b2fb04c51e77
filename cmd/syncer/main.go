// Package main is the entry point for the standalone sync worker.
// Runs only the periodic Contentful reconciliation, without the HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prodcat/internal/config"
	"prodcat/internal/domain/reconcile"
	"prodcat/internal/infrastructure/contentful"
	"prodcat/internal/infrastructure/scheduler"
	"prodcat/internal/infrastructure/storage/postgres"
	"prodcat/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting prodcat sync worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool.Unwrap()); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}

	productRepo := postgres.NewProductRepo(pool.Unwrap())
	source := contentful.NewClient(contentful.Config{
		SpaceID:     cfg.ContentfulSpaceID,
		Environment: cfg.ContentfulEnvironment,
		AccessToken: cfg.ContentfulAccessToken,
		ContentType: cfg.ContentfulContentType,
	})
	syncService := reconcile.NewService(productRepo, source)

	syncScheduler := scheduler.New(syncService, cfg.SyncInterval)
	if err := syncScheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("sync worker exited with error", "error", err)
	}

	log.Info("sync worker stopped")
}
