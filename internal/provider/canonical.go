// Package provider defines the canonical match types every record source
// normalizes into, plus the normalizer that produces them. These structs are
// the contract between the loader and the aggregation layer: sources output
// RawRow values, Normalize turns them into Match values, and nothing
// downstream ever touches an untyped row.
package provider

import "time"

// Result is the outcome of a bout from the subject wrestler's point of view.
type Result string

const (
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultDraw    Result = "draw"
	ResultUnknown Result = "unknown"
)

// Valid reports whether r is one of the known outcomes.
func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw, ResultUnknown:
		return true
	}
	return false
}

// Promotion is the organization tag derived from the bout text.
type Promotion string

const (
	PromotionWWE         Promotion = "WWE"
	PromotionAEW         Promotion = "AEW"
	PromotionNJPW        Promotion = "NJPW"
	PromotionTNA         Promotion = "TNA"
	PromotionIndependent Promotion = "Independent"
)

// Promotions lists every tag in classification priority order.
var Promotions = []Promotion{
	PromotionWWE, PromotionAEW, PromotionNJPW, PromotionTNA, PromotionIndependent,
}

// Event types accepted by the event-type filter. EventTypeAll and the empty
// string both mean no constraint.
const (
	EventTypeAll = "all"
	EventTypePPV = "ppv"
	EventTypeTV  = "tv"
)

// Fallback values used when the bout text yields nothing better.
const (
	UnknownOpponent  = "Unknown"
	DefaultMatchTime = "0:00"
)

// Match is one bout result for a single wrestler. Values are built once by
// Normalize and treated as immutable afterwards.
type Match struct {
	Date       string    `json:"date"`
	ParsedDate time.Time `json:"parsed_date"`
	DateParsed bool      `json:"date_parsed"` // false when ParsedDate is the processing-time fallback
	Year       int       `json:"year"`
	Wrestler   string    `json:"wrestler"`
	Opponent   string    `json:"opponent"`
	Result     Result    `json:"result"`
	Event      string    `json:"event"`
	Promotion  Promotion `json:"promotion"`
	Location   string    `json:"location"`
	MatchTime  string    `json:"match_time"`
	PPV        bool      `json:"ppv"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// WrestlerProfile aggregates every Match of one wrestler.
// Matches is nil on summary profiles and populated by materialization.
type WrestlerProfile struct {
	Name            string    `json:"name"`
	Promotion       Promotion `json:"promotion"`
	TotalMatches    int       `json:"total_matches"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Draws           int       `json:"draws"`
	WinRate         int       `json:"win_rate"`
	LastMatch       time.Time `json:"last_match"`
	CareerStart     time.Time `json:"career_start"`
	CareerEnd       time.Time `json:"career_end"`
	AvgMatchMinutes float64   `json:"avg_match_minutes"`
	PPVMatches      int       `json:"ppv_matches"`
	Matches         []Match   `json:"matches,omitempty"`
}

// FilterState is the active dashboard query. Zero values mean "no constraint".
type FilterState struct {
	SearchTerm        string `json:"search_term"`
	SelectedPromotion string `json:"selected_promotion"`
	SelectedYear      string `json:"selected_year"`
	SelectedResult    string `json:"selected_result"`
	SelectedEventType string `json:"selected_event_type"`
	MinMatches        int    `json:"min_matches"`
}

// FilterPatch is a partial FilterState update; nil fields are left unchanged
// and an empty string clears a filter.
type FilterPatch struct {
	SearchTerm        *string `json:"search_term,omitempty"`
	SelectedPromotion *string `json:"selected_promotion,omitempty"`
	SelectedYear      *string `json:"selected_year,omitempty"`
	SelectedResult    *string `json:"selected_result,omitempty"`
	SelectedEventType *string `json:"selected_event_type,omitempty"`
	MinMatches        *int    `json:"min_matches,omitempty"`
}

// filterValues is the validated form of a FilterPatch. The validator does not
// omit pointers to empty values, so fields are checked dereferenced.
type filterValues struct {
	SearchTerm        string `validate:"max=100"`
	SelectedPromotion string `validate:"omitempty,oneof=WWE AEW NJPW TNA Independent"`
	SelectedYear      string `validate:"omitempty,numeric,len=4"`
	SelectedResult    string `validate:"omitempty,oneof=win loss draw unknown"`
	SelectedEventType string `validate:"omitempty,oneof=all ppv tv"`
	MinMatches        int    `validate:"gte=0"`
}

// Validate checks every non-nil field of p.
func (p FilterPatch) Validate() error {
	var v filterValues
	if p.SearchTerm != nil {
		v.SearchTerm = *p.SearchTerm
	}
	if p.SelectedPromotion != nil {
		v.SelectedPromotion = *p.SelectedPromotion
	}
	if p.SelectedYear != nil {
		v.SelectedYear = *p.SelectedYear
	}
	if p.SelectedResult != nil {
		v.SelectedResult = *p.SelectedResult
	}
	if p.SelectedEventType != nil {
		v.SelectedEventType = *p.SelectedEventType
	}
	if p.MinMatches != nil {
		v.MinMatches = *p.MinMatches
	}
	return Validator().Struct(v)
}

// Apply returns f with every non-nil field of p copied over.
func (f FilterState) Apply(p FilterPatch) FilterState {
	if p.SearchTerm != nil {
		f.SearchTerm = *p.SearchTerm
	}
	if p.SelectedPromotion != nil {
		f.SelectedPromotion = *p.SelectedPromotion
	}
	if p.SelectedYear != nil {
		f.SelectedYear = *p.SelectedYear
	}
	if p.SelectedResult != nil {
		f.SelectedResult = *p.SelectedResult
	}
	if p.SelectedEventType != nil {
		f.SelectedEventType = *p.SelectedEventType
	}
	if p.MinMatches != nil {
		f.MinMatches = *p.MinMatches
	}
	return f
}

// DashboardMetrics is the scalar summary over the currently filtered matches.
type DashboardMetrics struct {
	TotalMatches          int `json:"total_matches"`
	TotalWrestlers        int `json:"total_wrestlers"`
	TotalPromotions       int `json:"total_promotions"`
	AvgMatchesPerWrestler int `json:"avg_matches_per_wrestler"`
	WinRate               int `json:"win_rate"`
}
