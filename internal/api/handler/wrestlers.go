package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/ringside-data/internal/aggregate"
	"github.com/albapepper/ringside-data/internal/api/respond"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/provider"
)

// MatchesResponse is one page of filtered matches.
type MatchesResponse struct {
	Version uint64               `json:"version"`
	Filters provider.FilterState `json:"filters"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
	Matches []provider.Match     `json:"matches"`
}

// WrestlersResponse is the wrestler directory.
type WrestlersResponse struct {
	Version   uint64                     `json:"version"`
	Total     int                        `json:"total"`
	Wrestlers []provider.WrestlerProfile `json:"wrestlers"`
}

// GetMatches returns a page of the filtered matches.
// @Summary List matches
// @Description Returns matches passing the active filters. Query parameters override individual filters for this request only.
// @Tags matches
// @Produce json
// @Param search query string false "Wrestler or opponent substring"
// @Param promotion query string false "Promotion" Enums(WWE, AEW, NJPW, TNA, Independent)
// @Param year query string false "Four-digit year"
// @Param result query string false "Result" Enums(win, loss, draw, unknown)
// @Param event_type query string false "Event type" Enums(all, ppv, tv)
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Page offset"
// @Success 200 {object} MatchesResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	patch, overridden, err := queryPatch(q)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_FILTER", "Invalid filter parameters", err.Error())
		return
	}
	limit, offset, err := page(q)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_PAGE", "Invalid pagination parameters", err.Error())
		return
	}

	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "matches", q), cache.TTLSnapshot, func() interface{} {
		filters, matches := snap.Filters, snap.Filtered
		if overridden {
			filters = filters.Apply(patch)
			matches = aggregate.Filter(snap.Matches, filters)
		}
		return MatchesResponse{
			Version: snap.Version,
			Filters: filters,
			Total:   len(matches),
			Limit:   limit,
			Offset:  offset,
			Matches: window(matches, limit, offset),
		}
	})
}

// GetWrestlers returns the wrestler directory.
// @Summary List wrestlers
// @Description Returns summary profiles, most active first, after the minimum-match floor and name search.
// @Tags wrestlers
// @Produce json
// @Param search query string false "Name substring"
// @Param min_matches query int false "Minimum total matches"
// @Success 200 {object} WrestlersResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /wrestlers [get]
func (h *Handler) GetWrestlers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	patch, overridden, err := queryPatch(q)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_FILTER", "Invalid filter parameters", err.Error())
		return
	}

	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "wrestlers", q), cache.TTLSnapshot, func() interface{} {
		wrestlers := snap.Wrestlers
		if overridden {
			wrestlers = aggregate.ListProfiles(snap.Profiles, snap.Filters.Apply(patch))
		}
		return WrestlersResponse{
			Version:   snap.Version,
			Total:     len(wrestlers),
			Wrestlers: wrestlers,
		}
	})
}

// GetWrestler returns one wrestler's full profile including every match.
// @Summary Get wrestler profile
// @Description Accepts the display name ("CM Punk") or the source identity ("CM_Punk").
// @Tags wrestlers
// @Produce json
// @Param name path string true "Wrestler name"
// @Success 200 {object} provider.WrestlerProfile
// @Failure 404 {object} respond.ErrorResponse
// @Router /wrestlers/{name} [get]
func (h *Handler) GetWrestler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSpace(name)

	profile, ok := h.store.Wrestler(name)
	if !ok {
		profile, ok = h.store.Wrestler(provider.WrestlerName(name))
	}
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No matches loaded for "+name)
		return
	}

	snap := h.store.Snapshot()
	h.serveCached(w, r, cacheKey(snap, "wrestler/"+profile.Name, nil), cache.TTLProfile, func() interface{} {
		return profile
	})
}
