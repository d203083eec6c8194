package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/albapepper/ringside-data/internal/api/respond"
	"github.com/albapepper/ringside-data/internal/cache"
	"github.com/albapepper/ringside-data/internal/dashboard"
	"github.com/albapepper/ringside-data/internal/provider"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// cacheKey scopes a route to the snapshot version and normalized query.
func cacheKey(snap *dashboard.Snapshot, route string, q url.Values) string {
	return fmt.Sprintf("v%d:%s?%s", snap.Version, route, q.Encode())
}

// serveCached renders build() once per key and answers conditional requests
// with 304.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() interface{}) {
	ifNoneMatch := r.Header.Get("If-None-Match")
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(ifNoneMatch, etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	data, err := json.Marshal(build())
	if err != nil {
		h.logger.Error("Failed to render response", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "RENDER_FAILED", "Failed to render response")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(ifNoneMatch, etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// queryPatch reads ad-hoc filter overrides from the query string. They apply
// to one request only and never change the store's filters.
func queryPatch(q url.Values) (provider.FilterPatch, bool, error) {
	var p provider.FilterPatch
	set := false
	str := func(key string) *string {
		if !q.Has(key) {
			return nil
		}
		set = true
		v := q.Get(key)
		return &v
	}
	p.SearchTerm = str("search")
	p.SelectedPromotion = str("promotion")
	p.SelectedYear = str("year")
	p.SelectedResult = str("result")
	p.SelectedEventType = str("event_type")
	if q.Has("min_matches") {
		n, err := strconv.Atoi(q.Get("min_matches"))
		if err != nil {
			return p, false, fmt.Errorf("min_matches must be an integer")
		}
		p.MinMatches = &n
		set = true
	}
	if err := p.Validate(); err != nil {
		return p, false, err
	}
	return p, set, nil
}

// page reads limit/offset, clamped to sane bounds.
func page(q url.Values) (limit, offset int, err error) {
	limit, offset = defaultLimit, 0
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("limit must be a positive integer")
		}
		limit = min(limit, maxLimit)
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
