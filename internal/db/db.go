// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking. New applies the schema before preparing.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/ringside-data/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if !cfg.HasDatabase() {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepared statements reference the tables, so they must exist first.
	if err := Migrate(ctx, poolCfg.ConnConfig); err != nil {
		return nil, err
	}

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, StmtHealthCheck).Scan(&n)
}

// Migrate applies the schema over a single dedicated connection. The DDL is
// idempotent.
func Migrate(ctx context.Context, connCfg *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schemaSQL
}

// Prepared statement names.
const (
	StmtHealthCheck     = "health_check"
	StmtSelectMatches   = "select_matches"
	StmtDeleteMatches   = "delete_wrestler_matches"
	StmtUpsertWrestler  = "upsert_wrestler"
	StmtSelectWrestlers = "select_wrestlers"
	StmtNotifySeeded    = "notify_seeded"
)

// registerPreparedStatements registers all statements the API and ingestion
// layers use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		StmtHealthCheck: "SELECT 1",

		// API: snapshot load in roster order, each wrestler in source order
		StmtSelectMatches: `
			SELECT wrestler, match_date, parsed_date, date_parsed, year, opponent,
			       result, event, promotion, location, match_time, ppv, image_url
			FROM ` + config.MatchesTable + `
			WHERE wrestler = ANY($1)
			ORDER BY array_position($1, wrestler), seq`,

		StmtSelectWrestlers: `
			SELECT name, promotion, total_matches, wins, losses, draws, win_rate,
			       last_match, career_start, career_end, avg_match_minutes, ppv_matches
			FROM ` + config.WrestlersTable + `
			ORDER BY total_matches DESC, name`,

		// Ingestion
		StmtDeleteMatches: "DELETE FROM " + config.MatchesTable + " WHERE wrestler = $1",
		StmtUpsertWrestler: `
			INSERT INTO ` + config.WrestlersTable + ` (
				name, identity, promotion, total_matches, wins, losses, draws,
				win_rate, last_match, career_start, career_end, avg_match_minutes,
				ppv_matches
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			ON CONFLICT (name) DO UPDATE SET
				identity = EXCLUDED.identity,
				promotion = EXCLUDED.promotion,
				total_matches = EXCLUDED.total_matches,
				wins = EXCLUDED.wins,
				losses = EXCLUDED.losses,
				draws = EXCLUDED.draws,
				win_rate = EXCLUDED.win_rate,
				last_match = EXCLUDED.last_match,
				career_start = EXCLUDED.career_start,
				career_end = EXCLUDED.career_end,
				avg_match_minutes = EXCLUDED.avg_match_minutes,
				ppv_matches = EXCLUDED.ppv_matches,
				updated_at = NOW()`,
		StmtNotifySeeded: "SELECT pg_notify('" + config.NotifyChannel + "', $1)",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
