// Package seed persists loaded matches and wrestler summaries to Postgres and
// reads them back for the API's postgres match source.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	SourcesLoaded     int
	SourcesFailed     int
	WrestlersUpserted int
	MatchesWritten    int
	Notified          bool
	Errors            []string
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"sources=%d failed=%d wrestlers=%d matches=%d notified=%t errors=%d",
		r.SourcesLoaded, r.SourcesFailed,
		r.WrestlersUpserted, r.MatchesWritten,
		r.Notified, len(r.Errors),
	)
}
