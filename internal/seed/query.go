package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/ringside-data/internal/db"
	"github.com/albapepper/ringside-data/internal/provider"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
)

// MatchReader loads seeded matches back out of Postgres. It satisfies the
// same Loader contract as the HTTP loader so the API can serve either.
type MatchReader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewMatchReader creates a MatchReader. It panics if pool is nil.
func NewMatchReader(pool *pgxpool.Pool, logger *slog.Logger) *MatchReader {
	if pool == nil {
		panic("seed: nil pool")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchReader{pool: pool, logger: logger}
}

// Load returns the stored matches of identities in roster order. A query
// failure counts every identity as failed.
func (r *MatchReader) Load(ctx context.Context, identities []string) csvsource.LoadResult {
	start := time.Now()
	result := csvsource.LoadResult{Sources: len(identities)}

	names := make([]string, len(identities))
	for i, id := range identities {
		names[i] = provider.WrestlerName(id)
	}

	matches, err := r.query(ctx, names)
	if err != nil {
		result.SourcesFailed = len(identities)
		result.AddErrorf("query matches: %v", err)
		result.Duration = time.Since(start)
		r.logger.Warn("Stored match load failed", "error", err)
		return result
	}

	seen := make(map[string]bool)
	for _, m := range matches {
		seen[m.Wrestler] = true
	}
	for _, n := range names {
		if !seen[n] {
			result.SourcesEmpty++
		}
	}
	result.Matches = matches
	result.RowsRead = len(matches)
	result.Duration = time.Since(start)

	r.logger.Info("Stored matches loaded",
		"duration", result.Duration.Round(time.Millisecond),
		"summary", result.Summary())
	return result
}

func (r *MatchReader) query(ctx context.Context, names []string) ([]provider.Match, error) {
	rows, err := r.pool.Query(ctx, db.StmtSelectMatches, names)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMatch)
}

func scanMatch(row pgx.CollectableRow) (provider.Match, error) {
	var (
		m                 provider.Match
		result, promotion string
	)
	err := row.Scan(
		&m.Wrestler, &m.Date, &m.ParsedDate, &m.DateParsed, &m.Year, &m.Opponent,
		&result, &m.Event, &promotion, &m.Location, &m.MatchTime, &m.PPV, &m.ImageURL,
	)
	if err != nil {
		return m, fmt.Errorf("scan match: %w", err)
	}
	m.Result = storedResult(result)
	m.Promotion = provider.Promotion(promotion)
	m.ParsedDate = m.ParsedDate.UTC()
	return m, nil
}

// storedResult maps the result column back onto Result. Anything outside
// the known set reads as unknown.
func storedResult(s string) provider.Result {
	if r := provider.Result(s); r.Valid() {
		return r
	}
	return provider.ResultUnknown
}

// ListWrestlers returns the stored profile summaries, most active first.
func ListWrestlers(ctx context.Context, pool *pgxpool.Pool) ([]provider.WrestlerProfile, error) {
	rows, err := pool.Query(ctx, db.StmtSelectWrestlers)
	if err != nil {
		return nil, fmt.Errorf("query wrestlers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (provider.WrestlerProfile, error) {
		var (
			p         provider.WrestlerProfile
			promotion string
		)
		err := row.Scan(
			&p.Name, &promotion, &p.TotalMatches, &p.Wins, &p.Losses, &p.Draws, &p.WinRate,
			&p.LastMatch, &p.CareerStart, &p.CareerEnd, &p.AvgMatchMinutes, &p.PPVMatches,
		)
		p.Promotion = provider.Promotion(promotion)
		return p, err
	})
}
