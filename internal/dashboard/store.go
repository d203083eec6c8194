// Package dashboard holds the live dashboard state: the loaded Match set, the
// active filters and everything derived from them. A Store is an explicit
// container; callers construct one and pass it where it is needed.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/albapepper/ringside-data/internal/aggregate"
	"github.com/albapepper/ringside-data/internal/provider"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
)

// ErrAllSourcesFailed is returned by Refresh when every source failed. The
// store still installs the resulting empty snapshot.
var ErrAllSourcesFailed = errors.New("dashboard: every record source failed")

// Loader produces the full Match set for a roster.
type Loader interface {
	Load(ctx context.Context, identities []string) csvsource.LoadResult
}

// Snapshot is an immutable view of the dashboard. Callers must not modify
// the slices it holds.
type Snapshot struct {
	Matches   []provider.Match
	Filtered  []provider.Match
	Profiles  []provider.WrestlerProfile // every wrestler, summary only
	Wrestlers []provider.WrestlerProfile // Profiles after MinMatches and search
	Metrics   provider.DashboardMetrics
	Filters   provider.FilterState
	Version   uint64
	LoadedAt  time.Time
}

// Empty reports whether the filtered view has no matches.
func (s *Snapshot) Empty() bool {
	return s.Metrics.TotalMatches == 0
}

// Store owns the dashboard state. All methods are safe for concurrent use.
type Store struct {
	loader Loader
	roster []string
	logger *slog.Logger

	refreshes singleflight.Group

	mu       sync.RWMutex
	snap     *Snapshot
	profiles map[string]provider.WrestlerProfile // materialized, reset on refresh
}

// NewStore creates an empty Store. It panics if loader is nil.
func NewStore(loader Loader, roster []string, logger *slog.Logger) *Store {
	if loader == nil {
		panic("dashboard: nil Loader")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		loader:   loader,
		roster:   append([]string(nil), roster...),
		logger:   logger,
		profiles: make(map[string]provider.WrestlerProfile),
	}
	s.snap = derive(nil, nil, provider.FilterState{}, 0, time.Time{})
	return s
}

// Roster returns the identities the store loads.
func (s *Store) Roster() []string {
	return append([]string(nil), s.roster...)
}

// Refresh reloads every source and replaces the snapshot, keeping the
// active filters. A cancelled ctx leaves the snapshot untouched. Concurrent
// calls share a single load.
func (s *Store) Refresh(ctx context.Context) (csvsource.LoadResult, error) {
	v, err, shared := s.refreshes.Do("refresh", func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if shared {
		s.logger.Debug("Joined in-flight dashboard refresh")
	}
	result, _ := v.(csvsource.LoadResult)
	return result, err
}

func (s *Store) refresh(ctx context.Context) (csvsource.LoadResult, error) {
	result := s.loader.Load(ctx, s.roster)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("dashboard refresh: %w", err)
	}

	matches := result.Matches
	if result.AllFailed() {
		matches = nil
	}

	s.mu.Lock()
	s.snap = derive(matches, nil, s.snap.Filters, s.snap.Version+1, time.Now().UTC())
	s.profiles = make(map[string]provider.WrestlerProfile)
	snap := s.snap
	s.mu.Unlock()

	if result.AllFailed() {
		s.logger.Error("Dashboard refresh failed, every record source is unavailable",
			"version", snap.Version,
			"summary", result.Summary())
		return result, ErrAllSourcesFailed
	}

	s.logger.Info("Dashboard snapshot refreshed",
		"version", snap.Version,
		"matches", len(snap.Matches),
		"wrestlers", len(snap.Profiles),
		"summary", result.Summary())
	return result, nil
}

// UpdateFilter merges patch into the active filters and re-derives the
// filtered view and metrics. An invalid patch leaves the state unchanged.
func (s *Store) UpdateFilter(patch provider.FilterPatch) (*Snapshot, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snap
	s.snap = derive(prev.Matches, prev.Profiles, prev.Filters.Apply(patch), prev.Version+1, prev.LoadedAt)
	return s.snap, nil
}

// ResetFilters clears every filter.
func (s *Store) ResetFilters() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snap
	s.snap = derive(prev.Matches, prev.Profiles, provider.FilterState{}, prev.Version+1, prev.LoadedAt)
	return s.snap
}

// Snapshot returns the current state.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Wrestler returns the full profile for name, materializing it on first use.
// The boolean is false when no loaded match belongs to name.
func (s *Store) Wrestler(name string) (provider.WrestlerProfile, bool) {
	s.mu.RLock()
	p, ok := s.profiles[name]
	snap := s.snap
	s.mu.RUnlock()
	if ok {
		return p, true
	}

	if !hasProfile(snap.Profiles, name) {
		return provider.WrestlerProfile{}, false
	}
	p = aggregate.Materialize(name, snap.Matches)

	s.mu.Lock()
	// A refresh may have landed while materializing.
	if sameMatches(s.snap, snap) {
		s.profiles[name] = p
	}
	s.mu.Unlock()
	return p, true
}

// derive rebuilds every filter-dependent field. profiles is recomputed when nil.
func derive(matches []provider.Match, profiles []provider.WrestlerProfile, f provider.FilterState, version uint64, loadedAt time.Time) *Snapshot {
	if matches == nil {
		matches = []provider.Match{}
	}
	if profiles == nil {
		profiles = aggregate.Summarize(matches)
	}
	filtered := aggregate.Filter(matches, f)
	return &Snapshot{
		Matches:   matches,
		Filtered:  filtered,
		Profiles:  profiles,
		Wrestlers: aggregate.ListProfiles(profiles, f),
		Metrics:   aggregate.ComputeMetrics(filtered, profiles),
		Filters:   f,
		Version:   version,
		LoadedAt:  loadedAt,
	}
}

func hasProfile(profiles []provider.WrestlerProfile, name string) bool {
	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// sameMatches reports whether two snapshots share the same loaded data,
// which holds across filter updates.
func sameMatches(a, b *Snapshot) bool {
	if len(a.Matches) != len(b.Matches) {
		return false
	}
	return len(a.Matches) == 0 || &a.Matches[0] == &b.Matches[0]
}
