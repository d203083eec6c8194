// Package api wires the chi router, middleware stack and handlers of the
// Ringside Data HTTP API.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/ringside-data/internal/api/handler"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/dashboard"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. db may be nil when no database is configured.
func NewRouter(store *dashboard.Store, appCache *cache.Cache, db handler.HealthChecker, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(store, appCache, db, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Dashboard state
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/metrics", h.GetMetrics)
		r.Patch("/filters", h.PatchFilters)
		r.Delete("/filters", h.DeleteFilters)
		r.Post("/refresh", h.PostRefresh)

		// Charts
		r.Get("/timeline", h.GetTimeline)
		r.Get("/promotions", h.GetPromotions)
		r.Get("/venues", h.GetVenues)

		// Records
		r.Get("/matches", h.GetMatches)
		r.Get("/wrestlers", h.GetWrestlers)
		r.Get("/wrestlers/{name}", h.GetWrestler)
	})

	return r
}
