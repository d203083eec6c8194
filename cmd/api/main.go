// Command api is the Ringside Data API server.
//
// Usage:
//
//	ringside-api
//	API_PORT=8080 MATCH_SOURCE=postgres ringside-api

// @title Ringside Data API
// @version 1.0.0
// @description Wrestling match analytics API serving filtered match records, wrestler profiles, dashboard metrics and chart series loaded from per-wrestler CSV sources.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Ringside
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/ringside-data/internal/api"
	"github.com/albapepper/ringside-data/internal/api/handler"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/dashboard"
	"github.com/albapepper/ringside-data/internal/db"
	"github.com/albapepper/ringside-data/internal/listener"
	"github.com/albapepper/ringside-data/internal/maintenance"
	"github.com/albapepper/ringside-data/internal/provider"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
	"github.com/albapepper/ringside-data/internal/seed"

	_ "github.com/albapepper/ringside-data/docs" // swagger docs
)

const cacheEvictInterval = 5 * time.Minute

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Database is optional for MATCH_SOURCE=http
	var pool *db.Pool
	var dbCheck handler.HealthChecker
	if cfg.HasDatabase() {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		dbCheck = pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	// Match source
	var loader dashboard.Loader
	switch cfg.MatchSource {
	case config.SourcePostgres:
		loader = seed.NewMatchReader(pool.Pool, logger)
	default:
		client := csvsource.NewClient(csvsource.ClientOptions{
			BaseURL:           cfg.RecordsBaseURL,
			FileSuffix:        cfg.RecordsFileSuffix,
			MaxBytes:          cfg.RecordsMaxBytes,
			RequestsPerMinute: cfg.FetchRequestsPerMin,
			Timeout:           cfg.FetchTimeout,
		}, logger)
		loader = csvsource.NewLoader(client, provider.NewNormalizer(), cfg.FetchWorkers, logger)
	}
	store := dashboard.NewStore(loader, cfg.Roster, logger)
	logger.Info("Dashboard store created",
		"match_source", cfg.MatchSource, "roster", len(cfg.Roster))

	// Initial load; a failure leaves an empty dashboard until the next refresh
	if result, err := store.Refresh(ctx); err != nil {
		logger.Warn("Initial load failed, serving empty dashboard", "error", err, "summary", result.Summary())
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Refresh on every seed when snapshots come from Postgres
	if cfg.MatchSource == config.SourcePostgres {
		go listener.Start(ctx, cfg.DatabaseURL, store, logger)
	}

	// Scheduled refresh and cache eviction
	go maintenance.Start(ctx, []maintenance.Task{
		maintenance.SnapshotRefresh(cfg.RefreshInterval, store, logger),
		maintenance.CacheEviction(cacheEvictInterval, appCache, logger),
	}, logger)

	// Create router
	router := api.NewRouter(store, appCache, dbCheck, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.FetchTimeout + 10*time.Second, // POST /refresh waits for a full load
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Ringside Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
