package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRow(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		want    RawRow
		wantErr bool
	}{
		{
			name:   "canonical headers",
			fields: map[string]string{"date": "01.03.2023", "result": "win", "event": "A defeats B"},
			want:   RawRow{Date: "01.03.2023", Result: "win", Event: "A defeats B"},
		},
		{
			name: "aliases and ignored index column",
			fields: map[string]string{
				"":            "17",
				"date":        "01.03.2023",
				"description": "A defeats B",
				"venue":       "Arena",
				"duration":    "10:00",
				"img":         "https://img.test/a.png",
			},
			want: RawRow{Date: "01.03.2023", Result: "A defeats B", Location: "Arena", MatchTime: "10:00", ImageURL: "https://img.test/a.png"},
		},
		{
			name:   "canonical header beats alias",
			fields: map[string]string{"result": "from result", "description": "from description", "event": "e"},
			want:   RawRow{Result: "from result", Event: "e"},
		},
		{
			name:   "values trimmed",
			fields: map[string]string{"date": " 01.03.2023 ", "event": "  Show  "},
			want:   RawRow{Date: "01.03.2023", Event: "Show"},
		},
		{
			name:   "date may be missing",
			fields: map[string]string{"event": "Show"},
			want:   RawRow{Event: "Show"},
		},
		{
			name:    "no bout text at all",
			fields:  map[string]string{"date": "01.03.2023", "location": "Arena"},
			wantErr: true,
		},
		{
			name:    "blank bout text",
			fields:  map[string]string{"date": "01.03.2023", "result": "  ", "event": ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRow(tt.fields)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalHeader(t *testing.T) {
	assert.Equal(t, "date", CanonicalHeader(" Date "))
	assert.Equal(t, "result", CanonicalHeader("DESCRIPTION"))
	assert.Equal(t, "", CanonicalHeader("index"))
}

func TestFilterStateApply(t *testing.T) {
	base := FilterState{SearchTerm: "punk", SelectedYear: "2023", MinMatches: 5}
	promo := "WWE"
	empty := ""
	zero := 0

	got := base.Apply(FilterPatch{SelectedPromotion: &promo, SearchTerm: &empty, MinMatches: &zero})

	assert.Equal(t, FilterState{SelectedPromotion: "WWE", SelectedYear: "2023"}, got)
	assert.Equal(t, "punk", base.SearchTerm, "Apply must not mutate the receiver")
}

func TestFilterPatchValidation(t *testing.T) {
	year := "20x3"
	result := "victory"
	neg := -1
	ok := "2023"
	clear := ""

	long := strings.Repeat("x", 101)

	assert.Error(t, FilterPatch{SelectedYear: &year}.Validate())
	assert.Error(t, FilterPatch{SelectedResult: &result}.Validate())
	assert.Error(t, FilterPatch{MinMatches: &neg}.Validate())
	assert.Error(t, FilterPatch{SearchTerm: &long}.Validate())
	assert.NoError(t, FilterPatch{SelectedYear: &ok, SelectedResult: &clear}.Validate())
	assert.NoError(t, FilterPatch{SelectedPromotion: &clear, SelectedYear: &clear}.Validate())
	assert.NoError(t, FilterPatch{}.Validate())

	for _, et := range []string{EventTypeAll, EventTypePPV, EventTypeTV, ""} {
		assert.NoError(t, FilterPatch{SelectedEventType: &et}.Validate(), et)
	}
	bad := "house_show"
	assert.Error(t, FilterPatch{SelectedEventType: &bad}.Validate())
}

func TestFilterStateApply_EventType(t *testing.T) {
	ppv := EventTypePPV
	got := FilterState{SearchTerm: "punk"}.Apply(FilterPatch{SelectedEventType: &ppv})
	assert.Equal(t, FilterState{SearchTerm: "punk", SelectedEventType: EventTypePPV}, got)

	all := EventTypeAll
	assert.Equal(t, EventTypeAll, got.Apply(FilterPatch{SelectedEventType: &all}).SelectedEventType)
	assert.Equal(t, EventTypePPV, got.Apply(FilterPatch{}).SelectedEventType)
}

func TestResultValid(t *testing.T) {
	assert.True(t, ResultDraw.Valid())
	assert.False(t, Result("tie").Valid())
}
