// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Default roster: the wrestlers loaded on a plain refresh
// --------------------------------------------------------------------------

// DefaultRoster lists the source identities fetched when WRESTLER_ROSTER is
// not set. Each identity maps to one "<identity>_matches.csv" resource.
var DefaultRoster = []string{
	"CM_Punk", "John_Cena", "Roman_Reigns", "Seth_Rollins", "Cody_Rhodes",
	"Drew_McIntyre", "Brock_Lesnar", "Becky_Lynch", "Charlotte_Flair", "Bayley",
	"Bianca_Belair", "Rhea_Ripley", "Finn_Balor", "AJ_Styles", "Adam_Cole",
	"Johnny_Gargano", "Adam_Copeland", "Jon_Moxley", "Bryan_Danielson", "Kenny_Omega",
	"Adam_Page", "Darby_Allin", "Orange_Cassidy", "Eddie_Kingston", "Jade_Cargill",
	"Hikaru_Shida", "Dr._Britt_Baker_DMD", "Thunder_Rosa", "Toni_Storm", "Hiroshi_Tanahashi",
	"Kazuchika_Okada", "Will_Ospreay", "Kota_Ibushi", "Jay_White", "Tetsuya_Naito",
	"Shingo_Takagi", "Tomohiro_Ishii", "Hiromu_Takahashi", "EVIL", "KUSHIDA",
	"Zack_Sabre_Jr.", "Samoa_Joe", "Kurt_Angle", "Mick_Foley", "The_Rock",
	"Steve_Austin", "Triple_H", "The_Undertaker",
}

// Match sources understood by the API server.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// --------------------------------------------------------------------------
// Table names, kept in step with internal/db/schema.sql
// --------------------------------------------------------------------------

const (
	MatchesTable   = "matches"
	WrestlersTable = "wrestlers"
)

// NotifyChannel is the Postgres channel pinged after every seed run.
const NotifyChannel = "matches_seeded"

// --------------------------------------------------------------------------
// Config, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Record sources
	RecordsBaseURL      string
	RecordsFileSuffix   string
	Roster              []string
	RecordsMaxBytes     int64
	FetchWorkers        int
	FetchRequestsPerMin int
	FetchTimeout        time.Duration
	MatchSource         string // http, postgres
	RefreshInterval     time.Duration

	// Database (optional unless seeding or MATCH_SOURCE=postgres)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		RecordsBaseURL:      strings.TrimRight(envOr("RECORDS_BASE_URL", "http://localhost:5173/wrestling-analytics-dashboard/data"), "/"),
		RecordsFileSuffix:   envOr("RECORDS_FILE_SUFFIX", "_matches.csv"),
		Roster:              dedupe(envList("WRESTLER_ROSTER", DefaultRoster)),
		RecordsMaxBytes:     int64(envInt("RECORDS_MAX_BYTES", 8<<20)),
		FetchWorkers:        envInt("FETCH_WORKERS", 4),
		FetchRequestsPerMin: envInt("FETCH_REQUESTS_PER_MINUTE", 600),
		FetchTimeout:        envDuration("FETCH_TIMEOUT_SECONDS", 30, time.Second),
		MatchSource:         strings.ToLower(envOr("MATCH_SOURCE", SourceHTTP)),
		RefreshInterval:     envDuration("REFRESH_INTERVAL_MINUTES", 60, time.Minute),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  envDuration("DB_POOL_MAX_LIFE_MINUTES", 30, time.Minute),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", 60, time.Second),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	switch cfg.MatchSource {
	case SourceHTTP:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when MATCH_SOURCE=%s", SourcePostgres)
		}
	default:
		return nil, fmt.Errorf("MATCH_SOURCE must be %q or %q, got %q", SourceHTTP, SourcePostgres, cfg.MatchSource)
	}
	if cfg.FetchWorkers < 1 {
		cfg.FetchWorkers = 1
	}
	if cfg.FetchRequestsPerMin < 1 {
		return nil, fmt.Errorf("FETCH_REQUESTS_PER_MINUTE must be positive")
	}

	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether a Postgres URL was configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback int, unit time.Duration) time.Duration {
	return time.Duration(envInt(key, fallback)) * unit
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
