package csvsource

import (
	"fmt"
	"time"

	"github.com/albapepper/ringside-data/internal/provider"
)

// LoadResult tracks counts and errors from a roster load.
type LoadResult struct {
	Sources       int
	SourcesFailed int
	SourcesEmpty  int
	RowsRead      int
	RowsSkipped   int
	Matches       []provider.Match
	Errors        []string
	Duration      time.Duration
}

// AddErrorf records a formatted error message.
func (r *LoadResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AllFailed reports whether every source failed, leaving nothing to show.
func (r *LoadResult) AllFailed() bool {
	return r.Sources > 0 && r.SourcesFailed == r.Sources
}

// Summary returns a human-readable summary of the load.
func (r *LoadResult) Summary() string {
	return fmt.Sprintf(
		"sources=%d failed=%d empty=%d rows=%d skipped=%d matches=%d errors=%d",
		r.Sources, r.SourcesFailed, r.SourcesEmpty,
		r.RowsRead, r.RowsSkipped, len(r.Matches), len(r.Errors),
	)
}
