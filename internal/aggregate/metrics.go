package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/albapepper/ringside-data/internal/provider"
)

// ComputeMetrics summarizes the filtered matches in one pass. Wrestler counts
// come from profiles, which the caller builds from the full record set.
func ComputeMetrics(filtered []provider.Match, profiles []provider.WrestlerProfile) provider.DashboardMetrics {
	var wins int
	promotions := make(map[provider.Promotion]struct{})
	for _, m := range filtered {
		if m.Result == provider.ResultWin {
			wins++
		}
		promotions[m.Promotion] = struct{}{}
	}

	metrics := provider.DashboardMetrics{
		TotalMatches:    len(filtered),
		TotalWrestlers:  len(profiles),
		TotalPromotions: len(promotions),
		WinRate:         WinRate(wins, len(filtered)),
	}
	if metrics.TotalWrestlers > 0 {
		metrics.AvgMatchesPerWrestler = metrics.TotalMatches / metrics.TotalWrestlers
	}
	return metrics
}

// YearCount is one point of the per-year timeline.
type YearCount struct {
	Year   int `json:"year"`
	Count  int `json:"count"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Timeline counts matches per year, ascending by year.
func Timeline(filtered []provider.Match) []YearCount {
	byYear := make(map[int]*YearCount)
	for _, m := range filtered {
		yc, ok := byYear[m.Year]
		if !ok {
			yc = &YearCount{Year: m.Year}
			byYear[m.Year] = yc
		}
		yc.Count++
		switch m.Result {
		case provider.ResultWin:
			yc.Wins++
		case provider.ResultLoss:
			yc.Losses++
		}
	}

	out := make([]YearCount, 0, len(byYear))
	for _, yc := range byYear {
		out = append(out, *yc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PromotionShare is one promotion's slice of the filtered matches.
type PromotionShare struct {
	Promotion provider.Promotion `json:"promotion"`
	Count     int                `json:"count"`
	Percent   float64            `json:"percent"` // one decimal place
}

// PromotionBreakdown counts matches per promotion in classification order.
// Promotions with no matches are omitted.
func PromotionBreakdown(filtered []provider.Match) []PromotionShare {
	counts := make(map[provider.Promotion]int)
	for _, m := range filtered {
		counts[m.Promotion]++
	}

	out := make([]PromotionShare, 0, len(counts))
	for _, p := range provider.Promotions {
		n := counts[p]
		if n == 0 {
			continue
		}
		out = append(out, PromotionShare{
			Promotion: p,
			Count:     n,
			Percent:   math.Round(float64(n)*1000/float64(len(filtered))) / 10,
		})
	}
	return out
}

// Venue fallbacks for locations that carry no usable part.
const (
	UnknownVenue   = "Unknown Venue"
	UnknownCity    = "Unknown City"
	UnknownCountry = "Unknown Country"
)

// VenueStat is one venue's slice of the filtered matches.
type VenueStat struct {
	Name            string               `json:"name"`
	City            string               `json:"city"`
	Country         string               `json:"country"`
	Matches         int                  `json:"matches"`
	Wrestlers       []string             `json:"wrestlers"`
	Promotions      []provider.Promotion `json:"promotions"`
	AvgMatchMinutes float64              `json:"avg_match_minutes"` // over timed matches only
}

// VenueBreakdown groups matches by venue and city, busiest first. Wrestlers
// are listed in first-seen order and promotions in classification order.
func VenueBreakdown(filtered []provider.Match) []VenueStat {
	type acc struct {
		v          VenueStat
		wrestlers  map[string]struct{}
		promotions map[provider.Promotion]struct{}
		minutes    float64
		timed      int
	}
	byKey := make(map[string]*acc)
	var order []*acc
	for _, m := range filtered {
		name, city, country := SplitLocation(m.Location)
		key := name + "\x00" + city
		a, ok := byKey[key]
		if !ok {
			a = &acc{
				v:          VenueStat{Name: name, City: city, Country: country},
				wrestlers:  make(map[string]struct{}),
				promotions: make(map[provider.Promotion]struct{}),
			}
			byKey[key] = a
			order = append(order, a)
		}
		a.v.Matches++
		if _, seen := a.wrestlers[m.Wrestler]; !seen {
			a.wrestlers[m.Wrestler] = struct{}{}
			a.v.Wrestlers = append(a.v.Wrestlers, m.Wrestler)
		}
		a.promotions[m.Promotion] = struct{}{}
		if mm := provider.MatchMinutes(m.MatchTime); mm > 0 {
			a.minutes += mm
			a.timed++
		}
	}

	out := make([]VenueStat, 0, len(order))
	for _, a := range order {
		for _, p := range provider.Promotions {
			if _, ok := a.promotions[p]; ok {
				a.v.Promotions = append(a.v.Promotions, p)
			}
		}
		a.v.AvgMatchMinutes = avgMinutes(a.minutes, a.timed)
		out = append(out, a.v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Matches > out[j].Matches })
	return out
}

// SplitLocation breaks "Venue in City, Region, Country" into venue, city and
// country. The country is the last comma part, so "in Tokyo" yields Tokyo
// for both. Missing parts get the Unknown fallbacks.
func SplitLocation(location string) (venue, city, country string) {
	venue, place, _ := strings.Cut(location, " in ")
	venue = strings.TrimSpace(venue)
	if venue == "" {
		venue = UnknownVenue
	}
	parts := strings.Split(place, ", ")
	city = strings.TrimSpace(parts[0])
	if city == "" {
		city = UnknownCity
	}
	country = strings.TrimSpace(parts[len(parts)-1])
	if country == "" {
		country = UnknownCountry
	}
	return venue, city, country
}
