package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/ringside-data/internal/provider/csvsource"
)

// Refresher reloads the dashboard snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (csvsource.LoadResult, error)
}

// Evicter drops expired cache entries and reports how many it removed.
type Evicter interface {
	Evict() int
}

// SnapshotRefresh reloads every record source on each tick.
func SnapshotRefresh(interval time.Duration, store Refresher, logger *slog.Logger) Task {
	return Task{
		Name:     "snapshot_refresh",
		Interval: interval,
		Run: func(ctx context.Context) {
			start := time.Now()
			result, err := store.Refresh(ctx)
			dur := time.Since(start).Round(time.Millisecond)
			if err != nil {
				logger.Warn("Scheduled refresh failed",
					"duration", dur, "summary", result.Summary(), "error", err)
				return
			}
			logger.Info("Scheduled refresh finished", "duration", dur, "summary", result.Summary())
		},
	}
}

// CacheEviction purges expired response cache entries.
func CacheEviction(interval time.Duration, c Evicter, logger *slog.Logger) Task {
	return Task{
		Name:     "cache_eviction",
		Interval: interval,
		Run: func(ctx context.Context) {
			if n := c.Evict(); n > 0 {
				logger.Debug("Cache eviction: purged expired entries", "count", n)
			}
		},
	}
}
