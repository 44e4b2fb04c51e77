// Package main is the entry point for the prodcat API server.
// Runs the HTTP API and the periodic Contentful sync in one process.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"prodcat/internal/config"
	"prodcat/internal/domain/auth"
	"prodcat/internal/domain/product"
	"prodcat/internal/domain/reconcile"
	"prodcat/internal/domain/reports"
	"prodcat/internal/infrastructure/contentful"
	v1 "prodcat/internal/infrastructure/http/v1"
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

	log.Info("starting prodcat server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool.Unwrap()); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}
	log.Info("database connection established")

	// --- Services ---
	productRepo := postgres.NewProductRepo(pool.Unwrap())
	productService := product.NewService(productRepo)
	reportsService := reports.NewService(productRepo)

	source := contentful.NewClient(contentful.Config{
		SpaceID:     cfg.ContentfulSpaceID,
		Environment: cfg.ContentfulEnvironment,
		AccessToken: cfg.ContentfulAccessToken,
		ContentType: cfg.ContentfulContentType,
	})
	syncService := reconcile.NewService(productRepo, source)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))
	authService := auth.NewService(jwtService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		Pool:           pool.Unwrap(),
		JWTValidator:   jwtService,
		AuthService:    authService,
		ProductService: productService,
		SyncService:    syncService,
		ReportsService: reportsService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		syncScheduler := scheduler.New(syncService, cfg.SyncInterval)
		if err := syncScheduler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalw("server exited with error", "error", err)
	}
	log.Info("server stopped")
}
