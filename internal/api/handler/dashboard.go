package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/albapepper/ringside-data/internal/aggregate"
	"github.com/albapepper/ringside-data/internal/api/respond"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/dashboard"
	"github.com/albapepper/ringside-data/internal/provider"
)

const maxFilterBody = 4 << 10

// DashboardResponse is everything the dashboard view renders at once.
type DashboardResponse struct {
	Version    uint64                     `json:"version"`
	LoadedAt   *time.Time                 `json:"loaded_at,omitempty"`
	Empty      bool                       `json:"empty"`
	Filters    provider.FilterState       `json:"filters"`
	Metrics    provider.DashboardMetrics  `json:"metrics"`
	Timeline   []aggregate.YearCount      `json:"timeline"`
	Promotions []aggregate.PromotionShare `json:"promotions"`
	Venues     []aggregate.VenueStat      `json:"venues"`
	Wrestlers  []provider.WrestlerProfile `json:"wrestlers"`
}

// FilterResponse reports the state after a filter change.
type FilterResponse struct {
	Version uint64                    `json:"version"`
	Empty   bool                      `json:"empty"`
	Filters provider.FilterState      `json:"filters"`
	Metrics provider.DashboardMetrics `json:"metrics"`
}

// RefreshResponse reports the outcome of a reload.
type RefreshResponse struct {
	Version       uint64   `json:"version"`
	Sources       int      `json:"sources"`
	SourcesFailed int      `json:"sources_failed"`
	SourcesEmpty  int      `json:"sources_empty"`
	Matches       int      `json:"matches"`
	RowsSkipped   int      `json:"rows_skipped"`
	Errors        []string `json:"errors"`
	Summary       string   `json:"summary"`
}

func loadedAt(snap *dashboard.Snapshot) *time.Time {
	if snap.LoadedAt.IsZero() {
		return nil
	}
	t := snap.LoadedAt
	return &t
}

// GetDashboard returns metrics, charts and the wrestler directory for the
// active filters.
// @Summary Get dashboard
// @Description Returns metrics, per-year timeline, promotion and venue breakdowns and the filtered wrestler directory.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "dashboard", nil), cache.TTLSnapshot, func() interface{} {
		return DashboardResponse{
			Version:    snap.Version,
			LoadedAt:   loadedAt(snap),
			Empty:      snap.Empty(),
			Filters:    snap.Filters,
			Metrics:    snap.Metrics,
			Timeline:   aggregate.Timeline(snap.Filtered),
			Promotions: aggregate.PromotionBreakdown(snap.Filtered),
			Venues:     aggregate.VenueBreakdown(snap.Filtered),
			Wrestlers:  snap.Wrestlers,
		}
	})
}

// GetMetrics returns the scalar dashboard metrics.
// @Summary Get metrics
// @Description Returns total matches, wrestlers, promotions, average matches per wrestler and win rate over the filtered matches.
// @Tags dashboard
// @Produce json
// @Success 200 {object} provider.DashboardMetrics
// @Router /metrics [get]
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "metrics", nil), cache.TTLSnapshot, func() interface{} {
		return snap.Metrics
	})
}

// GetTimeline returns filtered match counts per year.
// @Summary Get timeline
// @Tags charts
// @Produce json
// @Success 200 {array} aggregate.YearCount
// @Router /timeline [get]
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "timeline", nil), cache.TTLSnapshot, func() interface{} {
		return aggregate.Timeline(snap.Filtered)
	})
}

// GetPromotions returns the filtered match share per promotion.
// @Summary Get promotion breakdown
// @Tags charts
// @Produce json
// @Success 200 {array} aggregate.PromotionShare
// @Router /promotions [get]
func (h *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "promotions", nil), cache.TTLSnapshot, func() interface{} {
		return aggregate.PromotionBreakdown(snap.Filtered)
	})
}

// GetVenues returns the filtered matches grouped by venue, busiest first.
// @Summary Get venue breakdown
// @Tags charts
// @Produce json
// @Success 200 {array} aggregate.VenueStat
// @Router /venues [get]
func (h *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "venues", nil), cache.TTLSnapshot, func() interface{} {
		return aggregate.VenueBreakdown(snap.Filtered)
	})
}

// PatchFilters merges a partial filter update into the active filters.
// @Summary Update filters
// @Description Fields omitted from the body keep their current value. An empty string clears a filter.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param filters body provider.FilterPatch true "Partial filter update"
// @Success 200 {object} FilterResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /filters [patch]
func (h *Handler) PatchFilters(w http.ResponseWriter, r *http.Request) {
	var patch provider.FilterPatch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFilterBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a filter object", err.Error())
		return
	}

	snap, err := h.store.UpdateFilter(patch)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_FILTER", "Filter update rejected", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, filterResponse(snap))
}

// DeleteFilters clears every filter.
// @Summary Reset filters
// @Tags dashboard
// @Produce json
// @Success 200 {object} FilterResponse
// @Router /filters [delete]
func (h *Handler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, filterResponse(h.store.ResetFilters()))
}

func filterResponse(snap *dashboard.Snapshot) FilterResponse {
	return FilterResponse{
		Version: snap.Version,
		Empty:   snap.Empty(),
		Filters: snap.Filters,
		Metrics: snap.Metrics,
	}
}

// PostRefresh reloads every record source.
// @Summary Refresh data
// @Description Reloads the roster from the configured match source. Individual source failures are reported, not fatal.
// @Tags dashboard
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /refresh [post]
func (h *Handler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Refresh(r.Context())
	switch {
	case errors.Is(err, dashboard.ErrAllSourcesFailed):
		respond.WriteErrorDetail(w, http.StatusBadGateway, "SOURCES_UNAVAILABLE", "Every record source failed", result.Summary())
		return
	case err != nil:
		respond.WriteErrorDetail(w, http.StatusServiceUnavailable, "REFRESH_FAILED", "Refresh did not complete", err.Error())
		return
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	respond.WriteJSONObject(w, http.StatusOK, RefreshResponse{
		Version:       h.store.Snapshot().Version,
		Sources:       result.Sources,
		SourcesFailed: result.SourcesFailed,
		SourcesEmpty:  result.SourcesEmpty,
		Matches:       len(result.Matches),
		RowsSkipped:   result.RowsSkipped,
		Errors:        errs,
		Summary:       result.Summary(),
	})
}
