// Package aggregate filters Match collections and derives wrestler profiles
// and dashboard metrics from them. Every function is pure: inputs are never
// mutated and repeated calls on the same inputs return equal output.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/albapepper/ringside-data/internal/provider"
)

// Filter returns the matches passing every active row-level constraint of f.
// MinMatches is a wrestler-level constraint and is ignored here; see
// ListProfiles.
func Filter(matches []provider.Match, f provider.FilterState) []provider.Match {
	search := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	year, yearOK := parseYear(f.SelectedYear)

	out := make([]provider.Match, 0, len(matches))
	for _, m := range matches {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Wrestler), search) &&
			!strings.Contains(strings.ToLower(m.Opponent), search) {
			continue
		}
		if f.SelectedPromotion != "" && string(m.Promotion) != f.SelectedPromotion {
			continue
		}
		if f.SelectedYear != "" && (!yearOK || m.Year != year) {
			continue
		}
		if f.SelectedResult != "" && string(m.Result) != f.SelectedResult {
			continue
		}
		if f.SelectedEventType == provider.EventTypePPV && !m.PPV ||
			f.SelectedEventType == provider.EventTypeTV && m.PPV {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ListProfiles applies the directory constraints to profiles: the
// MinMatches floor and a case-insensitive name search.
func ListProfiles(profiles []provider.WrestlerProfile, f provider.FilterState) []provider.WrestlerProfile {
	search := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	out := make([]provider.WrestlerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.TotalMatches < f.MinMatches {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseYear reads SelectedYear; a non-numeric year matches nothing.
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return y, true
}
