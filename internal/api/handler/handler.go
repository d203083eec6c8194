// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the dashboard store's immutable snapshot and render JSON;
// rendered bytes are cached per snapshot version with ETags.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/ringside-data/internal/api/respond"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/dashboard"
)

// HealthChecker verifies database connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  *dashboard.Store
	cache  *cache.Cache
	cfg    *config.Config
	db     HealthChecker // nil without DATABASE_URL
	logger *slog.Logger
}

// New creates a Handler with shared dependencies. db may be nil.
func New(store *dashboard.Store, c *cache.Cache, db HealthChecker, cfg *config.Config, logger *slog.Logger) *Handler {
	if store == nil {
		panic("handler: nil dashboard store")
	}
	if c == nil {
		c = cache.New(false)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, cache: c, cfg: cfg, db: db, logger: logger}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":         "Ringside Data API",
		"version":      "1.0.0",
		"status":       "running",
		"docs":         "/docs",
		"match_source": h.cfg.MatchSource,
		"optimizations": []string{
			"immutable_snapshots",
			"singleflight_refresh",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status plus the loaded snapshot.
// @Summary Health check
// @Description Returns basic health status, timestamp and snapshot version.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	info := map[string]interface{}{
		"version":   snap.Version,
		"matches":   len(snap.Matches),
		"wrestlers": len(snap.Profiles),
	}
	if !snap.LoadedAt.IsZero() {
		info["loaded_at"] = snap.LoadedAt.Format(time.RFC3339)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"snapshot":  info,
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports not_configured without DATABASE_URL.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
