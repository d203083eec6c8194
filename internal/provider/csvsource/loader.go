package csvsource

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/ringside-data/internal/provider"
)

// Fetcher retrieves the raw CSV body for one wrestler identity.
type Fetcher interface {
	Fetch(ctx context.Context, identity string) ([]byte, error)
}

// Loader fetches, parses and normalizes every identity of a roster.
type Loader struct {
	fetcher    Fetcher
	normalizer *provider.Normalizer
	workers    int
	logger     *slog.Logger
}

// NewLoader creates a Loader. workers caps concurrent fetches (min 1).
func NewLoader(fetcher Fetcher, normalizer *provider.Normalizer, workers int, logger *slog.Logger) *Loader {
	if fetcher == nil {
		panic("csvsource: nil Fetcher")
	}
	if normalizer == nil {
		normalizer = provider.NewNormalizer()
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: fetcher, normalizer: normalizer, workers: workers, logger: logger}
}

// sourceResult is the outcome for one identity.
type sourceResult struct {
	matches []provider.Match
	rows    int
	skipped int
	invalid int
	err     error
}

// Load fetches every identity and returns the combined Match set. A failed
// fetch is logged and recorded in the result's Errors; it never aborts the
// batch. Matches appear in roster order, each wrestler's rows in source order.
// A cancelled ctx surfaces as per-identity fetch errors.
func (l *Loader) Load(ctx context.Context, identities []string) LoadResult {
	start := time.Now()
	results := make([]sourceResult, len(identities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, identity := range identities {
		g.Go(func() error {
			results[i] = l.loadOne(gctx, identity)
			return nil
		})
	}
	_ = g.Wait()

	result := LoadResult{Sources: len(identities)}
	for i, r := range results {
		result.RowsRead += r.rows
		result.RowsSkipped += r.skipped + r.invalid
		if r.err != nil {
			result.SourcesFailed++
			result.AddErrorf("%s: %v", identities[i], r.err)
			continue
		}
		if len(r.matches) == 0 {
			result.SourcesEmpty++
		}
		result.Matches = append(result.Matches, r.matches...)
	}
	result.Duration = time.Since(start)

	l.logger.Info("Roster load finished",
		"duration", result.Duration.Round(time.Millisecond),
		"summary", result.Summary())
	return result
}

func (l *Loader) loadOne(ctx context.Context, identity string) sourceResult {
	body, err := l.fetcher.Fetch(ctx, identity)
	if err != nil {
		l.logger.Warn("Record source fetch failed, continuing without it",
			"identity", identity, "error", err)
		return sourceResult{err: err}
	}

	records, stats := Parse(body)
	wrestler := provider.WrestlerName(identity)
	res := sourceResult{
		matches: make([]provider.Match, 0, len(records)),
		rows:    stats.Rows,
		skipped: stats.Skipped,
	}
	for _, rec := range records {
		row, err := provider.DecodeRow(rec)
		if err != nil {
			res.invalid++
			l.logger.Debug("Skipping invalid row", "identity", identity, "error", err)
			continue
		}
		res.matches = append(res.matches, l.normalizer.Normalize(row, wrestler))
	}

	if stats.Skipped > 0 || res.invalid > 0 {
		l.logger.Debug("Record source had malformed rows",
			"identity", identity, "short_rows", stats.Skipped, "invalid_rows", res.invalid)
	}
	return res
}
