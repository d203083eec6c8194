package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/ringside-data/internal/aggregate"
	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/db"
	"github.com/albapepper/ringside-data/internal/provider"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
)

// Loader produces the Match set for a roster.
type Loader interface {
	Load(ctx context.Context, identities []string) csvsource.LoadResult
}

// matchColumns is the COPY column order; matchRow must agree with it.
var matchColumns = []string{
	"wrestler", "seq", "match_date", "parsed_date", "date_parsed", "year",
	"opponent", "result", "event", "promotion", "location", "match_time",
	"ppv", "image_url",
}

func matchRow(seq int, m provider.Match) []any {
	return []any{
		m.Wrestler, seq, m.Date, m.ParsedDate, m.DateParsed, m.Year,
		m.Opponent, string(m.Result), m.Event, string(m.Promotion), m.Location, m.MatchTime,
		m.PPV, m.ImageURL,
	}
}

// WrestlerBatch is one wrestler's matches in source order.
type WrestlerBatch struct {
	Identity string
	Name     string
	Matches  []provider.Match
}

// groupByWrestler splits a roster-ordered match list into per-wrestler
// batches. Identities whose source produced nothing get no batch, so their
// stored rows are left alone.
func groupByWrestler(identities []string, matches []provider.Match) []WrestlerBatch {
	index := make(map[string]int)
	var batches []WrestlerBatch
	for _, id := range identities {
		name := provider.WrestlerName(id)
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = len(batches)
		batches = append(batches, WrestlerBatch{Identity: id, Name: name})
	}
	for _, m := range matches {
		i, ok := index[m.Wrestler]
		if !ok {
			index[m.Wrestler] = len(batches)
			batches = append(batches, WrestlerBatch{Identity: m.Wrestler, Name: m.Wrestler})
			i = len(batches) - 1
		}
		batches[i].Matches = append(batches[i].Matches, m)
	}

	out := batches[:0]
	for _, b := range batches {
		if len(b.Matches) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// SeedEvent is the JSON payload of pg_notify('matches_seeded', ...).
type SeedEvent struct {
	Wrestlers int   `json:"wrestlers"`
	Matches   int   `json:"matches"`
	Timestamp int64 `json:"ts"`
}

// SeedRoster loads every identity, replaces each loaded wrestler's stored
// matches and summary, then notifies listeners once if anything was written.
// Per-wrestler failures are recorded and do not stop the run.
func SeedRoster(ctx context.Context, pool *pgxpool.Pool, loader Loader, identities []string, logger *slog.Logger) SeedResult {
	var result SeedResult

	logger.Info("Loading roster for seed...", "identities", len(identities))
	load := loader.Load(ctx, identities)
	result.SourcesLoaded = load.Sources - load.SourcesFailed
	result.SourcesFailed = load.SourcesFailed
	result.Errors = append(result.Errors, load.Errors...)
	if load.AllFailed() {
		result.AddError("every record source failed, nothing to seed")
		return result
	}

	summaries := make(map[string]provider.WrestlerProfile)
	for _, p := range aggregate.Summarize(load.Matches) {
		summaries[p.Name] = p
	}

	for _, batch := range groupByWrestler(identities, load.Matches) {
		if ctx.Err() != nil {
			result.AddErrorf("seed interrupted: %v", ctx.Err())
			break
		}
		if err := ReplaceWrestler(ctx, pool, batch, summaries[batch.Name]); err != nil {
			result.AddErrorf("replace %s: %v", batch.Name, err)
			continue
		}
		result.WrestlersUpserted++
		result.MatchesWritten += len(batch.Matches)
		logger.Debug("Wrestler seeded", "wrestler", batch.Name, "matches", len(batch.Matches))
	}
	logger.Info("Wrestlers seeded", "count", result.WrestlersUpserted, "matches", result.MatchesWritten)

	if result.WrestlersUpserted > 0 {
		event := SeedEvent{
			Wrestlers: result.WrestlersUpserted,
			Matches:   result.MatchesWritten,
			Timestamp: time.Now().Unix(),
		}
		if err := Notify(ctx, pool, event); err != nil {
			result.AddErrorf("notify: %v", err)
		} else {
			result.Notified = true
		}
	}

	logger.Info("Roster seed complete", "summary", result.Summary())
	return result
}

// ReplaceWrestler swaps one wrestler's stored matches and summary in a
// single transaction.
func ReplaceWrestler(ctx context.Context, pool *pgxpool.Pool, batch WrestlerBatch, summary provider.WrestlerProfile) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, db.StmtDeleteMatches, batch.Name); err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{config.MatchesTable},
			matchColumns,
			pgx.CopyFromSlice(len(batch.Matches), func(i int) ([]any, error) {
				return matchRow(i, batch.Matches[i]), nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy matches: %w", err)
		}
		if int(n) != len(batch.Matches) {
			return fmt.Errorf("copy matches: wrote %d of %d rows", n, len(batch.Matches))
		}

		return UpsertWrestler(ctx, tx, batch.Identity, summary)
	})
}

// UpsertWrestler writes a profile summary to the wrestlers table.
func UpsertWrestler(ctx context.Context, tx pgx.Tx, identity string, p provider.WrestlerProfile) error {
	_, err := tx.Exec(ctx, db.StmtUpsertWrestler,
		p.Name, identity, string(p.Promotion), p.TotalMatches, p.Wins, p.Losses, p.Draws,
		p.WinRate, p.LastMatch, p.CareerStart, p.CareerEnd, p.AvgMatchMinutes,
		p.PPVMatches,
	)
	if err != nil {
		return fmt.Errorf("upsert wrestler: %w", err)
	}
	return nil
}

// Notify publishes a SeedEvent on the matches_seeded channel.
func Notify(ctx context.Context, pool *pgxpool.Pool, event SeedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = pool.Exec(ctx, db.StmtNotifySeeded, string(payload))
	return err
}
