package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/pricepulse/internal/api"
	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/config"
	"github.com/vytor/pricepulse/internal/db"
	"github.com/vytor/pricepulse/internal/jobs"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/repository/sqlite"
	"github.com/vytor/pricepulse/internal/services"
	"github.com/vytor/pricepulse/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("PricePulse Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("catalog_dir=%s", cfg.CatalogDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_rounds=%d max_rounds=%d", cfg.DefaultRounds, cfg.MaxRounds)
	log.Debug("session_ttl=%s sweep_interval=%s max_sessions=%d", cfg.SessionTTL, cfg.SweepInterval, cfg.MaxSessions)
	log.Debug("worker_count=%d queue_size=%d", cfg.WorkerCount, cfg.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	content, err := loadContent(cfg)
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		CORSOrigins: cfg.CORSOrigins,
	}

	// The store is optional; without it the loaded content is served as is.
	cat := content
	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()

		if cat, err = syncStore(ctx, database, content); err != nil {
			log.Error("failed to prepare catalog store: %v", err)
			os.Exit(1)
		}
		srv.Store = database
	}
	log.Info("catalog ready: %s", summary(cat))

	gameService := services.NewGameService(cat, services.GameServiceConfig{
		DefaultRounds: cfg.DefaultRounds,
		MaxRounds:     cfg.MaxRounds,
		MaxSessions:   cfg.MaxSessions,
		SessionTTL:    cfg.SessionTTL,
	})
	srv.GameService = gameService

	// Initialize worker pool and the session sweep
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)
	go jobs.Schedule(ctx, jobs.NewWorkerQueue(pool, gameService, time.Now), cfg.SweepInterval)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket streams are long-lived
		IdleTimeout:  60 * time.Second,
		ErrorLog:     log.WithPrefix("http").StdLogger(logger.WARN),
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("PricePulse Server Stopped")
	log.Info("===========================================")
}

func loadContent(cfg config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogDir != "" {
		cat, err = catalog.LoadDir(cfg.CatalogDir)
	} else {
		cat, err = catalog.Embedded()
	}
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog is invalid: %w", err)
	}
	return cat, nil
}

// syncStore seeds an empty store with content and returns the store's view
// of the catalog.
func syncStore(ctx context.Context, database *db.DB, content *catalog.Catalog) (*catalog.Catalog, error) {
	log := logger.Default().WithPrefix("catalog")
	repo := sqlite.NewCatalogRepository(database.DB)

	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		log.Info("seeding empty catalog store")
		if err := repo.Seed(ctx, content.Content()); err != nil {
			return nil, err
		}
	}
	return catalog.FromRepository(ctx, repo)
}

func summary(c *catalog.Catalog) string {
	content := c.Content()
	return fmt.Sprintf("%d trends, %d budgets, %d shopping challenges, %d market items",
		len(content.Trends), len(content.Budgets), len(content.Shopping), len(content.Market))
}
