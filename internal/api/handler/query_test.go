package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/ringside-data/internal/dashboard"
)

func TestQueryPatch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantSet bool
		wantErr bool
	}{
		{"empty", "", false, false},
		{"pagination only", "limit=5&offset=2", false, false},
		{"search", "search=cena", true, false},
		{"clear promotion", "promotion=", true, false},
		{"year", "year=2023", true, false},
		{"bad year", "year=23", false, true},
		{"bad result", "result=maybe", false, true},
		{"min matches", "min_matches=3", true, false},
		{"bad min matches", "min_matches=x", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			_, set, err := queryPatch(q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, set)
		})
	}
}

func TestPage(t *testing.T) {
	limit, offset, err := page(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, limit)
	assert.Zero(t, offset)

	limit, _, err = page(url.Values{"limit": {"5000"}})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, limit)

	_, _, err = page(url.Values{"offset": {"-1"}})
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, window(items, 2, 0))
	assert.Equal(t, []int{4, 5}, window(items, 10, 3))
	assert.Equal(t, []int{}, window(items, 2, 5))
}

func TestCacheKeyIsVersionScoped(t *testing.T) {
	q := url.Values{"b": {"2"}, "a": {"1"}}
	a := cacheKey(&dashboard.Snapshot{Version: 1}, "matches", q)
	b := cacheKey(&dashboard.Snapshot{Version: 2}, "matches", q)
	assert.Equal(t, "v1:matches?a=1&b=2", a)
	assert.NotEqual(t, a, b)
}
